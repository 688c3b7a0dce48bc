package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	verr := NewValidationError()
	assert.False(t, verr.HasErrors())

	verr.Add("name", "required")
	verr.Add("name", "too long")
	verr.Add("description", "too long")

	assert.True(t, verr.HasErrors())
	assert.Equal(t, "validation failed: description: too long, name: required; too long", verr.Error())
	assert.True(t, Is(fmt.Errorf("patch: %w", verr), ErrValidation))
}

func TestWrapUnwraps(t *testing.T) {
	err := Wrap(ErrInvalidInput, "bad id")
	assert.Equal(t, "bad id", err.Error())
	assert.True(t, Is(err, ErrInvalidInput))
}

func TestWrapCodeFollowsSentinel(t *testing.T) {
	assert.Equal(t, "INVALID_INPUT", Wrap(ErrInvalidInput, "x").Code)
	assert.Equal(t, "NOT_FOUND", Wrap(fmt.Errorf("city 1: %w", ErrNotFound), "x").Code)
	assert.Equal(t, "VALIDATION_FAILED", Wrap(NewValidationError(), "x").Code)
	assert.Equal(t, "INTERNAL_ERROR", Wrap(ErrCacheError, "x").Code)
}

func TestToAPIErrorUsesWrappedCode(t *testing.T) {
	err := &Error{Err: ErrInvalidInput, Message: "cityId must be a number", Code: "INVALID_ID"}

	apiErr := ToAPIError(fmt.Errorf("get city: %w", err))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "INVALID_ID", apiErr.Code)
}

func TestToAPIError(t *testing.T) {
	verr := NewValidationError()
	verr.Add("name", "required")

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("city 4: %w", ErrNotFound), http.StatusNotFound, "NOT_FOUND"},
		{"validation", verr, http.StatusBadRequest, "VALIDATION_FAILED"},
		{"invalid input", Wrap(ErrInvalidInput, "bad"), http.StatusBadRequest, "INVALID_INPUT"},
		{"api error", NewAPIError("RATE_LIMITED", "slow down", http.StatusTooManyRequests), http.StatusTooManyRequests, "RATE_LIMITED"},
		{"unknown", fmt.Errorf("disk on fire"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := ToAPIError(tt.err)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}

	assert.Equal(t, map[string][]string{"name": {"required"}}, ToAPIError(verr).Errors)
	assert.Empty(t, ToAPIError(fmt.Errorf("secret detail")).Details)
}
