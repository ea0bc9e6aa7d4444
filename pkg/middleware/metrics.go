package middleware

import (
	"net/http"
	"strconv"
	"time"

	"equipment-booking/internal/metrics"

	"github.com/go-chi/chi/v5"
)

// Metrics middleware records request counts and latency per route pattern
func Metrics() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			// Route pattern keeps cardinality bounded, e.g. /api/bookings/{id}/cancel
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}

			metrics.RecordHTTPRequest(
				r.Method,
				path,
				strconv.Itoa(rw.statusCode),
				time.Since(start).Seconds(),
			)
		})
	}
}
