package middleware

import (
	"encoding/json"
	"net/http"

	"cityinfo-api/internal/logger"
	"cityinfo-api/internal/pkg/errors"
)

// WriteError writes an APIError as a JSON response
func WriteError(w http.ResponseWriter, apiErr *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	if err := json.NewEncoder(w).Encode(apiErr); err != nil {
		logger.Logger.WithError(err).Error("Failed to encode error response")
	}
}
