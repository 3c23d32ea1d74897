package middlewares

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// HTTPMetrics records request counts and latency per route pattern.
func (m *Middlewares) HTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Metrics == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if routeContext := chi.RouteContext(r.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		m.Metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.statusCode)).Inc()
		m.Metrics.HTTPRequestLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
