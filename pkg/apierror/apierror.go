package apierror

import (
	"errors"
	"net/http"
)

// Error is the single structured error type for all domain failures. The
// handler layer maps it straight onto the wire error envelope.
type Error struct {
	Code    int      `json:"statusCode"`
	Message string   `json:"message"`
	Errs    []string `json:"errors"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(code int, message string, errs ...string) *Error {
	if errs == nil {
		errs = []string{}
	}
	return &Error{Code: code, Message: message, Errs: errs}
}

func BadRequest(message string, errs ...string) *Error {
	return New(http.StatusBadRequest, message, errs...)
}

func Unauthorized(message string, errs ...string) *Error {
	return New(http.StatusUnauthorized, message, errs...)
}

func NotFound(message string, errs ...string) *Error {
	return New(http.StatusNotFound, message, errs...)
}

func Conflict(message string, errs ...string) *Error {
	return New(http.StatusConflict, message, errs...)
}

func Internal(message string, errs ...string) *Error {
	return New(http.StatusInternalServerError, message, errs...)
}

// From extracts an *Error from err, wrapping unknown failures as a 500 so
// handlers never leak internals to the client.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Internal("something went wrong")
}
