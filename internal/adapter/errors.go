package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors mapped from HTTP status codes by mapHTTPError. Callers
// match with [errors.Is] regardless of transport.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("access forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")

	// ErrNoSession means the auth provider holds no session for this
	// device.
	ErrNoSession = errors.New("no session")

	// ErrStateNotFound means the remote authority has no snapshot row for
	// the identity yet. First login takes this branch and seeds the row.
	ErrStateNotFound = errors.New("remote state not found")
)

// StatusError is a non-2xx HTTP response surfaced as an error. It wraps the
// sentinel matching its code (when one exists) so [errors.Is] keeps
// working, and carries the numeric code for the failure classifier.
type StatusError struct {
	Code int
	Body string

	sentinel error
}

// NewStatusError builds a StatusError for code, wrapping the matching
// sentinel when one exists.
func NewStatusError(code int, body string) *StatusError {
	var sentinel error
	switch code {
	case http.StatusBadRequest:
		sentinel = ErrBadRequest
	case http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case http.StatusForbidden:
		sentinel = ErrForbidden
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	case http.StatusInternalServerError:
		sentinel = ErrInternalServerError
	case http.StatusBadGateway:
		sentinel = ErrBadGateway
	case http.StatusServiceUnavailable:
		sentinel = ErrServiceUnavailable
	}
	return &StatusError{Code: code, Body: body, sentinel: sentinel}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error { return e.sentinel }
