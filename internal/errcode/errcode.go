// Package errcode defines the error taxonomy shared by the generation
// pipeline and the HTTP API.
package errcode

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a stable, machine-readable error identifier returned to callers.
type Code string

const (
	MissingFields       Code = "missing_fields"
	InvalidTemplate     Code = "invalid_template"
	Unauthorized        Code = "unauthorized"
	APIKeyMissing       Code = "api_key_missing"
	APITimeout          Code = "api_timeout"
	APIError            Code = "api_error"
	ContentStructure    Code = "content_structure"
	TooManyCombinations Code = "too_many_combinations"
	GenerationError     Code = "generation_error"
	NotFound            Code = "not_found"
	BadRequest          Code = "bad_request"
)

// Error is a typed failure carrying a Code and a human-readable message.
// Status is the upstream HTTP status for api_error failures, 0 otherwise.
type Error struct {
	Code    Code
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an *Error with the given code and message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error with the given code that wraps err.
func Wrap(code Code, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the code of err, or GenerationError for untyped errors.
func CodeOf(err error) Code {
	if e, ok := As(err); ok {
		return e.Code
	}
	return GenerationError
}

// MessageOf returns the human-readable message of err without the code prefix.
func MessageOf(err error) string {
	if e, ok := As(err); ok {
		return e.Message
	}
	return err.Error()
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	e, ok := As(err)
	return ok && e.Code == code
}

// HTTPStatus maps a code to the status the API responds with.
func HTTPStatus(code Code) int {
	switch code {
	case MissingFields, BadRequest, TooManyCombinations:
		return http.StatusBadRequest
	case InvalidTemplate:
		return http.StatusUnprocessableEntity
	case Unauthorized:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case APIKeyMissing:
		return http.StatusServiceUnavailable
	case APITimeout:
		return http.StatusGatewayTimeout
	case APIError, ContentStructure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
