package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dbelyaev/coachbase/internal/common"
)

// handlerFunc is a handler that reports failures by returning an error;
// the adapter below owns the mapping to HTTP status codes.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handle(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.respondError(r.Context(), w, r, err)
		}
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"internal error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// errorStatus maps sentinel errors to HTTP statuses. Conflicts map to 400
// to match the documented API, not 409.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(ctx context.Context, w http.ResponseWriter, r *http.Request, err error) {
	status := errorStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.Error(ctx, "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		if !s.development {
			message = common.ErrInternal.Error()
		}
	} else {
		s.logger.Warn(ctx, "client error", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)
	}

	respondJSON(w, status, map[string]string{"error": message})
}
