// Package errs defines custom error types and utilities.
//
// Its purpose is to give API clients meaningful, consistent error shapes:
// a stable machine-readable code, a human-readable message, and the HTTP
// status, serialized directly to JSON by the global error handler.
package errs

import (
	"net/http"
	"strings"
)

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is designed to be
// serialized directly to JSON.
type HTTPError struct {
	// Code is a machine-friendly error code (e.g. "NOT_FOUND").
	Code string `json:"code"`

	// Message is the human-friendly message.
	Message string `json:"message"`

	// Status is the HTTP status code.
	Status int `json:"status"`
}

// Error makes *HTTPError satisfy the built-in error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also a *HTTPError, so errors.Is can match on
// the type without comparing fields.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced,
// leaving the original untouched.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// Message is the generic status text, not the underlying error message;
// clients get a stable shape, logs keep the real error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}

// MakeUpperCaseWithUnderscores converts a string into
// UPPER_CASE_WITH_UNDERSCORES format, e.g. "Not Found" -> "NOT_FOUND".
// Used to create stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
