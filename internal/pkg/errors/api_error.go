package errors

import (
	"fmt"
	"net/http"
)

// APIError is the body of every error response.
type APIError struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Status  int                 `json:"status"`
	Details string              `json:"details,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// ToAPIError maps domain errors onto their HTTP representation. Errors it
// does not recognise become a 500 without details.
func ToAPIError(err error) *APIError {
	var apiErr *APIError
	if As(err, &apiErr) {
		return apiErr
	}

	var verr *ValidationError
	switch {
	case Is(err, ErrNotFound):
		return NewAPIError(codeOf(err, "NOT_FOUND"), "Resource not found", http.StatusNotFound, err.Error())
	case As(err, &verr):
		apiErr = NewAPIError("VALIDATION_FAILED", "One or more validation errors occurred", http.StatusBadRequest)
		apiErr.Errors = verr.Fields
		return apiErr
	case Is(err, ErrInvalidInput):
		return NewAPIError(codeOf(err, "INVALID_INPUT"), "Invalid request data", http.StatusBadRequest, err.Error())
	default:
		return NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
	}
}

// codeOf returns the code of the outermost *Error in err's chain, or fallback.
func codeOf(err error, fallback string) string {
	var wrapped *Error
	if As(err, &wrapped) && wrapped.Code != "" {
		return wrapped.Code
	}
	return fallback
}
