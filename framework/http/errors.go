package http

import "net/http"

// Error is a handler-level error carrying the HTTP status it should map
// to. Handlers return it when a request fails for a user-facing reason;
// anything else a handler returns is treated as a server error by the
// dispatch pipeline.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// NewError builds an *Error.
func NewError(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

// NotFoundError builds a 404 error.
func NotFoundError(message string) *Error {
	return NewError(http.StatusNotFound, message)
}

// BadRequestError builds a 400 error.
func BadRequestError(message string) *Error {
	return NewError(http.StatusBadRequest, message)
}
