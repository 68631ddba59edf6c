package render_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"acadiasafe/internal/render"
	"acadiasafe/pkg/e"
)

func TestError_StatusAndDetail(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"detail", fmt.Errorf("op: %w", e.WithDetail(e.ErrConflict, "You already have an active Friend Walk")), http.StatusConflict, "You already have an active Friend Walk"},
		{"bare not found", fmt.Errorf("op: %w", e.ErrNotFound), http.StatusNotFound, "not found"},
		{"coordinates", e.ErrInvalidCoordinates, http.StatusBadRequest, "invalid input"},
		{"unauthorized", e.WithDetail(e.ErrUnauthorized, "Invalid token"), http.StatusUnauthorized, "Invalid token"},
		{"internal hides detail", e.WithDetail(e.ErrInternal, "pg exploded"), http.StatusInternalServerError, "internal error"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			render.Error(rr, httptest.NewRequest(http.MethodGet, "/x", nil), logger, tt.err)

			if rr.Code != tt.wantCode {
				t.Fatalf("expected %d got %d", tt.wantCode, rr.Code)
			}
			var body render.ErrorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error != tt.wantMsg {
				t.Fatalf("expected %q got %q", tt.wantMsg, body.Error)
			}
		})
	}
}

func TestDecode_Strict(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"ok", `{"name":"x"}`, false},
		{"unknown field", `{"name":"x","extra":1}`, true},
		{"trailing data", `{"name":"x"}{"name":"y"}`, true},
		{"broken", `{"name":`, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var p payload
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			err := render.Decode(httptest.NewRecorder(), r, &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr=%v got %v", tt.wantErr, err)
			}
		})
	}
}
