package classify

import (
	"context"
	"errors"
	"net/http"

	"github.com/puneetripathi/bajaj-frontend/pkg/classifier"
	"github.com/puneetripathi/bajaj-frontend/pkg/payload"
)

// HTTPError is an error that knows its response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an error with the status to answer it with.
type StatusError struct {
	Code int
	Err  error
}

// Error returns the wrapped message, or the status text when there is none.
func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

// Unwrap returns the wrapped error.
func (e StatusError) Unwrap() error { return e.Err }

// StatusCode returns Code, or 500 when Code is unset.
func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// statusFor maps a submit failure to the API status code: input problems are
// 422, an unusable upstream is 502 (504 on timeout).
func statusFor(err error) int {
	var httpErr HTTPError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &httpErr):
		return httpErr.StatusCode()
	case errors.Is(err, payload.ErrMalformedJSON), errors.Is(err, payload.ErrInvalidShape):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, classifier.ErrTransportFailure),
		errors.Is(err, classifier.ErrUnreachable),
		errors.Is(err, classifier.ErrMalformedResponse):
		return http.StatusBadGateway
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
