package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	h "comprobantes/internal/http"
	"comprobantes/internal/handlers"
	"comprobantes/internal/health"
	"comprobantes/internal/logger"
	"comprobantes/internal/middleware"
	"comprobantes/internal/services"
	"comprobantes/internal/session"
	"comprobantes/internal/views"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the comprobantes page, API and page sessions",
	Example: `  # Serve the embedded sample data on the configured port
  comprobantes serve

  # Serve with an explicit config file
  comprobantes serve -c /etc/comprobantes/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	log := logger.WithComponent("server")
	cfg := a.cfg

	v := views.New()
	fingerprint := a.store.Fingerprint()
	comprobanteService := services.NewComprobanteService(a.store, v, fingerprint)
	exportService := services.NewExportService(a.store, fingerprint, cfg.UI.Title)
	hub := session.NewHub()

	router := h.NewRouter(
		handlers.NewPageHandler(v, comprobanteService, cfg.UI.Title),
		handlers.NewComprobanteHandler(comprobanteService, exportService),
		handlers.NewSessionHandler(a.store, v, hub, cfg.UI.PanelMargin),
		handlers.NewHealthHandler(health.NewHealthChecker(a.pool, a.store.Len())),
	)
	handler := middleware.NewCORS(cfg)(router)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Int("sessions", hub.Count()).Msg("Shutting down")
	timeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by Shutdown
	hub.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}
