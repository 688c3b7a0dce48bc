package middleware

import (
	"net/http"
	"runtime/debug"

	"cityinfo-api/internal/logger"
	"cityinfo-api/internal/pkg/errors"

	"github.com/sirupsen/logrus"
)

// Recovery turns a panicking handler into a 500 response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Logger.WithFields(logrus.Fields{
					"panic":      rec,
					"stack":      string(debug.Stack()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"request_id": RequestIDFromContext(r.Context()),
				}).Error("Panic recovered")
				WriteError(w, errors.NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
