// Package apperr holds the domain rejections produced by request validation
// and store lookups. Each carries the HTTP status it should be answered with.
package apperr

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func NotFound() *Error {
	return New(http.StatusNotFound, "404: Not found")
}

func BadRequest() *Error {
	return New(http.StatusBadRequest, "400: Bad request")
}

func MissingFields() *Error {
	return New(http.StatusBadRequest, "400: Missing required fields")
}

func SchemaValidation() *Error {
	return New(http.StatusBadRequest, "400: Failing schema validation")
}

func Internal() *Error {
	return New(http.StatusInternalServerError, "500: Internal server error")
}

// As unwraps err into an *Error.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)

	return e, ok
}
