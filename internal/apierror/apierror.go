// Package apierror provides the response envelope and typed errors for the API.
// Every JSON response goes through Response so clients see one shape, and
// every domain failure is an *Error so the error middleware can map it to a
// status without leaking internals.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Response is the canonical envelope: { success, message?, data?, errors? }.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError is one entry of a validation failure. Field is the JSON path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a domain error carrying its HTTP status.
type Error struct {
	Status  int
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an error with an arbitrary status.
func New(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

func BadRequest(msg string) *Error   { return New(http.StatusBadRequest, msg) }
func NotFound(msg string) *Error     { return New(http.StatusNotFound, msg) }
func Unauthorized(msg string) *Error { return New(http.StatusUnauthorized, msg) }
func Forbidden(msg string) *Error    { return New(http.StatusForbidden, msg) }
func Conflict(msg string) *Error     { return New(http.StatusConflict, msg) }
func Unavailable(msg string) *Error  { return New(http.StatusServiceUnavailable, msg) }

// Internal wraps an unexpected error. Its message is never shown to clients.
func Internal(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: "internal server error", Err: err}
}

// Validation builds a 400 error with per-field details.
func Validation(fields []FieldError) *Error {
	return &Error{Status: http.StatusBadRequest, Message: "validation failed", Fields: fields}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err carries a 404.
func IsNotFound(err error) bool {
	apiErr, ok := As(err)
	return ok && apiErr.Status == http.StatusNotFound
}

// OK wraps data in a success envelope.
func OK(data any) Response { return Response{Success: true, Data: data} }

// Message wraps a plain message in a success envelope.
func Message(msg string) Response { return Response{Success: true, Message: msg} }

// Fail builds the failure envelope for err.
func Fail(err *Error) Response {
	return Response{Success: false, Message: err.Message, Errors: err.Fields}
}
