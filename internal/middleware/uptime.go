package middleware

import (
	"net/http"
	"time"

	"cityinfo-api/internal/services"
)

// UptimeMiddleware feeds request timings and outcomes into the uptime service.
type UptimeMiddleware struct {
	service *services.UptimeService
}

func NewUptimeMiddleware(service *services.UptimeService) *UptimeMiddleware {
	return &UptimeMiddleware{service: service}
}

// Middleware wraps an http.Handler and records request data. Time spent
// serving a 5xx response counts as downtime.
func (m *UptimeMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		elapsed := time.Since(start)
		failed := rw.statusCode >= http.StatusInternalServerError
		m.service.RecordRequest(elapsed, failed)
		if failed {
			m.service.RecordDowntime(elapsed)
		}
	})
}
