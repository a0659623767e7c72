package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recom/pkg/platform/middleware/request"
	"recom/pkg/validation"
)

// Registrar mounts a group of routes.
type Registrar interface {
	Register(r chi.Router)
}

// RouterConfig carries what every service router needs.
type RouterConfig struct {
	Logger         *slog.Logger
	RequestTimeout time.Duration
	// Registry both collects the HTTP latency histogram and backs /metrics.
	Registry *prometheus.Registry
	Health   Registrar
}

// NewRouter wires the middleware stack, health probes, /metrics and the given
// domain handlers onto one chi router.
func NewRouter(cfg RouterConfig, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	r.Use(request.RequestTime)
	r.Use(request.Logger(cfg.Logger))
	if cfg.Registry != nil {
		r.Use(request.LatencyMiddleware(request.NewMetrics(cfg.Registry)))
	}
	if cfg.RequestTimeout > 0 {
		r.Use(request.Timeout(cfg.RequestTimeout))
	}

	if cfg.Health != nil {
		cfg.Health.Register(r)
	}
	if cfg.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{Registry: cfg.Registry}))
	}

	r.Group(func(api chi.Router) {
		api.Use(request.BodyLimit(validation.MaxBodySize))
		api.Use(request.ContentTypeJSON)
		for _, h := range handlers {
			h.Register(api)
		}
	})

	return r
}
