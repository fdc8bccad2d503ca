package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error carries the HTTP status and a stable machine-readable code alongside
// the underlying cause. Handlers unwrap it with errors.As and translate it
// into the error envelope; anything that is not an *Error surfaces as 500.
type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(msg string) *Error {
	return New(http.StatusNotFound, "not_found", errors.New(msg))
}

// NotModified marks a write against a soft-deleted record. It maps to 304,
// which must go out without a body.
func NotModified() *Error {
	return New(http.StatusNotModified, "not_modified", nil)
}

func Validation(msg string) *Error {
	return New(http.StatusUnprocessableEntity, "validation_failed", errors.New(msg))
}

func Conflict(msg string) *Error {
	return New(http.StatusBadRequest, "conflict", errors.New(msg))
}

func BadRequest(msg string) *Error {
	return New(http.StatusBadRequest, "bad_request", errors.New(msg))
}

func Unauthorized(msg string) *Error {
	return New(http.StatusUnauthorized, "unauthorized", errors.New(msg))
}

func Forbidden(msg string) *Error {
	return New(http.StatusForbidden, "forbidden", errors.New(msg))
}

func Internal(msg string) *Error {
	return New(http.StatusInternalServerError, "internal", errors.New(msg))
}

// From extracts the *Error from err's chain, defaulting to a 500 wrapper so
// callers always get a status to respond with.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return New(http.StatusInternalServerError, "internal", err)
}
