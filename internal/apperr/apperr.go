package apperr

import (
	"errors"
	"net/http"
)

// Error is an application error carrying the HTTP status code it should
// surface as. Handlers convert these into the response envelope; anything
// that is not an *Error falls back to a 500.
type Error struct {
	StatusCode int
	Message    string
	Err        error // optional underlying cause
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed or missing input (HTTP 400).
func Validation(message string) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Message: message}
}

// Conflict reports a duplicate unique key (HTTP 409).
func Conflict(message string) *Error {
	return &Error{StatusCode: http.StatusConflict, Message: message}
}

// NotFound reports an unknown id on lookup or update (HTTP 404).
func NotFound(message string) *Error {
	return &Error{StatusCode: http.StatusNotFound, Message: message}
}

// Upload reports a remote media store failure (HTTP 400).
func Upload(message string, cause error) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Message: message, Err: cause}
}

// StatusOf returns the HTTP status for err: the embedded code for an *Error,
// 500 for everything else.
func StatusOf(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// MessageOf returns the user-facing message for err. Unclassified errors get
// a generic message so internals never leak into responses.
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "An unexpected error occurred"
}
