package system_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"acadiasafe/internal/api/handlers/http/system"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSystemHealth(t *testing.T) {
	t.Parallel()

	up := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("refused") })

	tests := []struct {
		name       string
		checks     map[string]system.Pinger
		wantCode   int
		wantStatus string
	}{
		{name: "no checks", checks: nil, wantCode: http.StatusOK, wantStatus: "healthy"},
		{name: "all up", checks: map[string]system.Pinger{"postgres": up, "redis": up}, wantCode: http.StatusOK, wantStatus: "healthy"},
		{name: "redis down", checks: map[string]system.Pinger{"postgres": up, "redis": down}, wantCode: http.StatusServiceUnavailable, wantStatus: "degraded"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := system.NewHandler(newTestLogger(), tt.checks)
			rr := httptest.NewRecorder()
			h.SystemHealth(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rr.Code != tt.wantCode {
				t.Fatalf("expected %d got %d", tt.wantCode, rr.Code)
			}
			var got system.HealthResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if got.Status != tt.wantStatus || got.Message != "Acadia Safe API" {
				t.Fatalf("unexpected body %+v", got)
			}
		})
	}
}
