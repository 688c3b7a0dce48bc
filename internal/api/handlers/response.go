package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"cityinfo-api/internal/logger"
	"cityinfo-api/internal/middleware"
	"cityinfo-api/internal/pkg/errors"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Logger.WithError(err).Error("Failed to encode response")
	}
}

// respondWithServiceError writes the HTTP form of err. Unexpected errors are
// logged with the request they belong to.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := errors.ToAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		logger.Logger.WithFields(logrus.Fields{
			"error":      err,
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": middleware.RequestIDFromContext(r.Context()),
		}).Error("Unhandled service error")
	}
	middleware.WriteError(w, apiErr)
}

// intVar parses a numeric path variable.
func intVar(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrap(errors.ErrInvalidInput, "The value '"+raw+"' is not valid for "+name+".")
	}
	return value, nil
}

func decodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.Wrap(errors.ErrInvalidInput, "A non-empty request body is required.")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "The request body is not valid JSON: "+err.Error())
	}
	return nil
}
