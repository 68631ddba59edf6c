package client

import (
	"errors"
	"fmt"
	"net/http"

	"acadiasafe/pkg/e"
)

// APIError is a non-2xx answer from the service. Detail is the server's
// human-readable message.
type APIError struct {
	Status int
	Detail string
}

func (a *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", a.Status, a.Detail)
}

// Is lets callers test against the shared sentinels with errors.Is.
func (a *APIError) Is(target error) bool {
	switch target {
	case e.ErrUnauthorized:
		return a.Status == http.StatusUnauthorized || a.Status == http.StatusForbidden
	case e.ErrNotFound:
		return a.Status == http.StatusNotFound
	case e.ErrConflict:
		return a.Status == http.StatusConflict
	case e.ErrInvalidInput:
		return a.Status == http.StatusBadRequest || a.Status == http.StatusUnprocessableEntity
	case e.ErrRateLimited:
		return a.Status == http.StatusTooManyRequests
	case e.ErrInternal:
		return a.Status >= http.StatusInternalServerError
	}
	return false
}

// DetailOf returns the server message carried by err, falling back to
// err.Error().
func DetailOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	if d, ok := e.Detail(err); ok {
		return d
	}
	return err.Error()
}
