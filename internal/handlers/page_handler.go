package handlers

import (
	"net/http"

	"comprobantes/internal/logger"
	"comprobantes/internal/services"
	"comprobantes/internal/views"
)

// SessionPath is where the page opens its event websocket
const SessionPath = "/ws/comprobantes"

type PageHandler struct {
	views   *views.Views
	service *services.ComprobanteService
	title   string
}

func NewPageHandler(v *views.Views, s *services.ComprobanteService, title string) *PageHandler {
	return &PageHandler{views: v, service: s, title: title}
}

// ComprobantesPage serves the comprobantes table with the hidden panel
func (h *PageHandler) ComprobantesPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")

	data := views.NewPageData(h.title, SessionPath, h.service.Rows())
	if err := h.views.Page(w, data); err != nil {
		log := logger.WithComponent("pages")
		log.Error().Err(err).Msg("render comprobantes page")
	}
}
