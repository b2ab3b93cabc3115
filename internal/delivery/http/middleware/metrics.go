package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/user/snap-site/pkg/metrics"
)

// Metrics records request counts and latencies labelled by route pattern, so
// unknown paths do not create unbounded label values.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			duration := time.Since(start)

			path := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			status := strconv.Itoa(ww.Status())
			m.HTTPRequestDuration.WithLabelValues(r.Method, path, status).Observe(duration.Seconds())
			m.HTTPRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}
