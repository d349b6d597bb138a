package services

import (
	"context"

	"comprobantes/internal/cache"
	"comprobantes/internal/models"
	"comprobantes/internal/panel"
	"comprobantes/internal/store"
	"comprobantes/internal/views"
)

// ComprobanteDetail is one row with the panel content it opens.
type ComprobanteDetail struct {
	Row   panel.Row     `json:"row"`
	Panel panel.Content `json:"panel"`
}

// ComprobanteService serves read-only views of the store
type ComprobanteService struct {
	Store       store.Store
	Views       *views.Views
	Fingerprint string
}

func NewComprobanteService(s store.Store, v *views.Views, fingerprint string) *ComprobanteService {
	return &ComprobanteService{Store: s, Views: v, Fingerprint: fingerprint}
}

// ListComprobantes returns every comprobante in store order
func (s *ComprobanteService) ListComprobantes() []models.Comprobante {
	return s.Store.All()
}

// Rows returns the table rows of a freshly loaded page: store order, read
// through an idle controller, so none is selected
func (s *ComprobanteService) Rows() []panel.Row {
	return panel.NewController(s.Store, panel.DefaultMargin).Rows()
}

// GetComprobante returns the display row and panel content for index
func (s *ComprobanteService) GetComprobante(index int) (*ComprobanteDetail, error) {
	c, err := s.Store.Get(index)
	if err != nil {
		return nil, err
	}
	rows := panel.BuildRows([]models.Comprobante{c})
	rows[0].Index = index
	return &ComprobanteDetail{
		Row:   rows[0],
		Panel: panel.BuildContent(index, c),
	}, nil
}

// PanelFragment renders the panel HTML for index, using Redis when available
func (s *ComprobanteService) PanelFragment(ctx context.Context, index int) ([]byte, error) {
	if data, ok := cache.GetCachedPanel(ctx, s.Fingerprint, index); ok {
		return data, nil
	}

	c, err := s.Store.Get(index)
	if err != nil {
		return nil, err
	}
	html, err := s.Views.Panel(panel.BuildContent(index, c))
	if err != nil {
		return nil, err
	}

	data := []byte(html)
	cache.CachePanel(ctx, s.Fingerprint, index, data)
	return data, nil
}
