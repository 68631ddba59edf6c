package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"acadiasafe/internal/client"
	"acadiasafe/internal/domain"
	"acadiasafe/internal/forms"
	"acadiasafe/internal/session"
	"acadiasafe/pkg/e"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// campus is a stand-in API server that records the calls it receives.
type campus struct {
	mu    sync.Mutex
	calls []string
	login domain.LoginRequest
}

func (c *campus) record(r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls = append(c.calls, r.Method+" "+r.URL.Path)
}

func (c *campus) called(call string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, got := range c.calls {
		if got == call {
			n++
		}
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newCampus(t *testing.T) *campus {
	t.Helper()

	c := &campus{}
	user := domain.User{ID: uuid.New(), FullName: "Jane Doe", Email: "jane@acadiau.ca"}

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.record(r)
			next.ServeHTTP(w, r)
		})
	})
	r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		c.mu.Lock()
		c.login = req
		c.mu.Unlock()
		if req.Password != "secret1" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, domain.AuthResponse{Token: "tok-1", User: user})
	})
	r.Get("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-1" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid token"})
			return
		}
		writeJSON(w, http.StatusOK, user)
	})
	r.Post("/api/sos", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, domain.SOSAlert{ID: uuid.New(), Status: domain.SOSActive})
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	t.Setenv("ACADIA_API_URL", srv.URL)
	t.Setenv("ACADIA_HOME", t.TempDir())
	return c
}

func run(ctx context.Context, args ...string) (string, error) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func TestLogin_SavesToken(t *testing.T) {
	c := newCampus(t)

	out, err := run(context.Background(), "login", "--email", "  Jane@AcadiaU.ca ", "--password", "secret1")
	require.NoError(t, err)
	require.Contains(t, out, "Signed in as Jane Doe")
	require.Equal(t, "jane@acadiau.ca", c.login.Email)

	raw, err := os.ReadFile(filepath.Join(os.Getenv("ACADIA_HOME"), "token"))
	require.NoError(t, err)
	require.Equal(t, "tok-1", string(raw))
}

func TestLogin_BadPasswordIsAuthError(t *testing.T) {
	newCampus(t)

	_, err := run(context.Background(), "login", "--email", "jane@acadiau.ca", "--password", "nope")
	var ae *session.AuthError
	require.ErrorAs(t, err, &ae)

	var buf bytes.Buffer
	printError(&buf, err)
	require.Equal(t, "Invalid email or password\n", buf.String())
}

func TestSOS_InterruptCancelsCountdown(t *testing.T) {
	c := newCampus(t)
	_, err := run(context.Background(), "login", "--email", "jane@acadiau.ca", "--password", "secret1")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(600*time.Millisecond, cancel)

	out, err := run(ctx, "sos", "medical")
	require.NoError(t, err)
	require.Contains(t, out, "Sending SOS in 3...")
	require.Contains(t, out, "SOS cancelled")
	require.Zero(t, c.called("POST /api/sos"))
}

func TestSOS_RequiresSignIn(t *testing.T) {
	c := newCampus(t)

	_, err := run(context.Background(), "sos", "medical")
	require.ErrorIs(t, err, e.ErrUnauthorized)
	require.Zero(t, c.called("POST /api/sos"))
}

func TestPrintError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "validation errors sorted by field",
			err:  forms.ValidationErrors{"password": "Password is required", "email": "Enter a valid email address"},
			want: "Please fix the following:\n  email: Enter a valid email address\n  password: Password is required\n",
		},
		{
			name: "auth error shows the server detail",
			err:  &session.AuthError{Detail: "Email already registered", Err: e.ErrConflict},
			want: "Email already registered\n",
		},
		{
			name: "api error",
			err:  &client.APIError{Status: http.StatusNotFound, Detail: "Alert not found"},
			want: "Alert not found\n",
		},
		{
			name: "local detail",
			err:  e.WithDetail(e.ErrUnauthorized, "Not signed in. Run `acadia login` first."),
			want: "Not signed in. Run `acadia login` first.\n",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			printError(&buf, tt.err)
			require.Equal(t, tt.want, buf.String())
			require.False(t, strings.Contains(buf.String(), "\x1b["))
		})
	}
}
