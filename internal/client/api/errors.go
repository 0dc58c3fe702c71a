package api

import (
	"net/http"

	"github.com/dbelyaev/coachbase/internal/common"
)

// APIError describes a non-2xx response from the server. It carries the
// HTTP status and the server-provided message, and unwraps to one of the
// common sentinel errors so callers can branch with errors.Is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusBadRequest:
		return common.ErrValidation
	case http.StatusUnauthorized:
		return common.ErrUnauthorized
	case http.StatusForbidden:
		return common.ErrForbidden
	case http.StatusNotFound:
		return common.ErrNotFound
	default:
		return common.ErrInternal
	}
}
