package http

import (
	"net/http"

	"comprobantes/internal/handlers"
	"comprobantes/internal/middleware"
	"comprobantes/static"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	pageHandler *handlers.PageHandler,
	comprobanteHandler *handlers.ComprobanteHandler,
	sessionHandler *handlers.SessionHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.PanicRecovery)
	r.Use(middleware.MetricsMiddleware)
	r.Use(middleware.RequestLogging)

	// Serve static files
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.FS(static.FS))))

	// HTML pages
	r.HandleFunc("/", pageHandler.ComprobantesPage).Methods("GET")
	r.HandleFunc("/comprobantes", pageHandler.ComprobantesPage).Methods("GET")

	// Page session events
	r.HandleFunc(handlers.SessionPath, sessionHandler.Connect).Methods("GET")

	// Read-only API. Exports are registered before {index} so they are not
	// taken for a row.
	api := r.PathPrefix("/api/comprobantes").Subrouter()
	api.HandleFunc("", comprobanteHandler.ListComprobantes).Methods("GET")
	api.HandleFunc("/export.xlsx", comprobanteHandler.ExportXLSX).Methods("GET")
	api.HandleFunc("/export.pdf", comprobanteHandler.ExportPDF).Methods("GET")
	api.HandleFunc("/{index:[0-9-]+}", comprobanteHandler.GetComprobante).Methods("GET")
	api.HandleFunc("/{index:[0-9-]+}/panel", comprobanteHandler.GetPanel).Methods("GET")

	// Health check endpoints
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	return r
}
