package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"comprobantes/internal/services"
	"comprobantes/internal/store"
	"comprobantes/pkg/utils"

	"github.com/gorilla/mux"
)

type ComprobanteHandler struct {
	Service *services.ComprobanteService
	Export  *services.ExportService
}

func NewComprobanteHandler(s *services.ComprobanteService, e *services.ExportService) *ComprobanteHandler {
	return &ComprobanteHandler{Service: s, Export: e}
}

func (h *ComprobanteHandler) ListComprobantes(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Service.ListComprobantes())
}

func (h *ComprobanteHandler) GetComprobante(w http.ResponseWriter, r *http.Request) {
	index, ok := rowIndex(w, r)
	if !ok {
		return
	}

	detail, err := h.Service.GetComprobante(index)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, detail)
}

// GetPanel returns the rendered panel fragment for one row
func (h *ComprobanteHandler) GetPanel(w http.ResponseWriter, r *http.Request) {
	index, ok := rowIndex(w, r)
	if !ok {
		return
	}

	html, err := h.Service.PanelFragment(r.Context(), index)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

func (h *ComprobanteHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, services.FormatXLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

func (h *ComprobanteHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, services.FormatPDF, "application/pdf")
}

func (h *ComprobanteHandler) export(w http.ResponseWriter, r *http.Request, format, contentType string) {
	data, err := h.Export.Export(r.Context(), format)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to generate export: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=comprobantes.%s", format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

func rowIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid row index")
		return 0, false
	}
	return index, true
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrRowNotFound) {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}
	utils.Error(w, http.StatusInternalServerError, err.Error())
}
