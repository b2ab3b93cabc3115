package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/user/snap-site/internal/delivery/http/handler"
	"github.com/user/snap-site/internal/delivery/http/middleware"
	"github.com/user/snap-site/pkg/metrics"
	"go.uber.org/zap"
)

func New(h *handler.Handler, m *metrics.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics(m))
	r.Use(middleware.Logging(logger))

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.HandleHealthCheck)
		r.Get("/captures", h.HandleListCaptures)
	})

	return r
}
