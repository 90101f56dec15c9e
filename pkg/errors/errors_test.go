package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := NewNotFoundError("itinerary with id 42 not found")
	assert.Equal(t, "NOT_FOUND: itinerary with id 42 not found", err.Error())

	wrapped := NewUnavailableError("geocoding request failed", fmt.Errorf("connection refused"))
	assert.Contains(t, wrapped.Error(), "UNAVAILABLE")
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("timeout")
	err := NewExternalError("geocoding failed", inner)
	assert.Equal(t, inner, err.Unwrap())
}

func TestAppError_HTTPStatus(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{NewNotFoundError("x"), http.StatusNotFound},
		{NewValidationError("x"), http.StatusBadRequest},
		{NewConflictError("x"), http.StatusConflict},
		{NewUnauthorizedError("x"), http.StatusUnauthorized},
		{NewForbiddenError("x"), http.StatusForbidden},
		{NewUnprocessableError("x", nil), http.StatusUnprocessableEntity},
		{NewUnavailableError("x", nil), http.StatusServiceUnavailable},
		{NewInternalError("x", nil), http.StatusInternalServerError},
		{NewExternalError("x", nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.HTTPStatus(), string(tc.err.Type))
	}
}

func TestIsType(t *testing.T) {
	err := NewValidationError("no fields to update")
	assert.True(t, IsType(err, ErrorTypeValidation))
	assert.False(t, IsType(err, ErrorTypeNotFound))

	// works through wrapping
	wrapped := fmt.Errorf("saving itinerary: %w", err)
	assert.True(t, IsType(wrapped, ErrorTypeValidation))

	assert.False(t, IsType(fmt.Errorf("plain"), ErrorTypeValidation))
}
