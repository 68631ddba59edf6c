package middleware

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"acadiasafe/internal/render"
	"acadiasafe/pkg/e"

	"github.com/google/uuid"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

type TokenParser interface {
	ParseToken(token string) (uuid.UUID, error)
}

// Auth requires a valid bearer token and stores its subject in the context.
func Auth(parser TokenParser, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(h, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				render.Error(w, r, logger, e.WithDetail(e.ErrUnauthorized, "Not authenticated"))
				return
			}

			id, err := parser.ParseToken(strings.TrimSpace(token))
			if err != nil {
				render.Error(w, r, logger, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), id)))
		})
	}
}

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserID returns the authenticated caller; ok is false outside Auth.
func UserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// APIKeyMiddleware guards operator routes with the X-API-Key header.
func APIKeyMiddleware(apiKey string, logger *slog.Logger) func(http.Handler) http.Handler {
	want := []byte(apiKey)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := []byte(r.Header.Get("X-API-Key"))
			if len(got) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
				logger.Warn("admin request rejected", slog.String("remote", r.RemoteAddr))
				render.Error(w, r, logger, e.WithDetail(e.ErrUnauthorized, "invalid API key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
