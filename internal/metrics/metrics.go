package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// PanelOpens counts right-clicks that opened the contextual panel
	PanelOpens = promauto.NewCounter(prometheus.CounterOpts{
		Name: "comprobantes_panel_opens_total",
		Help: "Contextual panels opened",
	})

	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "comprobantes_sessions_active",
		Help: "Page sessions with an open websocket",
	})

	SessionEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comprobantes_session_events_total",
			Help: "Events received from page sessions",
		},
		[]string{"type"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "comprobantes_cache_lookups_total",
			Help: "Redis cache lookups by result",
		},
		[]string{"result"},
	)
)
