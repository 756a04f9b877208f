package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable covers every transport failure: refused connections,
	// timeouts, cancelled contexts and 5xx answers.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnexpectedResponse means the body matched none of the accepted shapes.
	ErrUnexpectedResponse = errors.New("unexpected response")

	ErrNotFound = errors.New("not found")

	ErrLocalDataNotAvailable = errors.New("local data unavailable")
)

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("server error: %d %s", e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("server error: %d - %s", e.Code, e.Body)
}

// Is lets callers match 404 with ErrNotFound and 5xx with ErrUnavailable.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrUnavailable:
		return e.Code >= 500
	}
	return false
}
