package binder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/schemakit/pkg/schema"
)

type errorResponse struct {
	Error any `json:"error"`
}

type errorMessage struct {
	Message string `json:"message"`
}

// StatusCode maps a Binder error to an HTTP status.
//
//   - *schema.ValidationError: 422
//   - ErrMissingContentType, ErrUnsupportedMediaType: 415
//   - ErrBodyTooLarge: 413
//   - other parse errors: 400
//   - context cancellation or deadline: 408
//   - anything else: 500
func StatusCode(err error) int {
	switch {
	case schema.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrMissingContentType), errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrFailedToParseJSON), errors.Is(err, ErrFailedToParseForm), errors.Is(err, ErrFailedToParseQuery):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes err as a JSON error response and returns the status used.
//
// Validation errors are written in full:
//
//	{"error": {"message": "email: Expect value to be \"string\"", "errors": [{"path": ["email"], "error": {...}}]}}
//
// Other client errors carry their message; server errors only the status text.
func WriteError(w http.ResponseWriter, err error) int {
	status := StatusCode(err)

	var body errorResponse
	switch {
	case status == http.StatusUnprocessableEntity:
		ve, _ := schema.AsValidationError(err)
		body.Error = ve
	case status >= http.StatusInternalServerError:
		body.Error = errorMessage{Message: http.StatusText(status)}
	default:
		body.Error = errorMessage{Message: err.Error()}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)

	return status
}
