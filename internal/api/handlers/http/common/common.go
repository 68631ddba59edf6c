// Package common holds the request plumbing shared by the resource handlers.
package common

import (
	"log/slog"
	"net/http"
	"strconv"

	"acadiasafe/internal/middleware"
	"acadiasafe/pkg/e"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Logger derives a per-request logger carrying chi's request id.
func Logger(base *slog.Logger, r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return base
	}
	return base.With(slog.String("request_id", reqID))
}

func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, e.WithDetail(e.ErrInvalidInput, "invalid "+name)
	}
	return id, nil
}

func CurrentUser(r *http.Request) (uuid.UUID, error) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		return uuid.Nil, e.WithDetail(e.ErrUnauthorized, "Not authenticated")
	}
	return id, nil
}

func ParseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
