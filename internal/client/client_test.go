package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"acadiasafe/internal/client"
	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"
)

func TestClient_AttachesBearerToken(t *testing.T) {
	t.Parallel()

	var gotAuth, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(domain.User{ID: uuid.New(), Email: "a@acadiau.ca"})
	}))
	defer srv.Close()

	c := client.New(srv.URL+"/", client.WithTokenSource(client.TokenFunc(func() string { return "abc" })))
	_, err := c.Auth.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer abc", gotAuth)
	require.Equal(t, "/api/auth/me", gotPath)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected auth header %q", r.Header.Get("Authorization"))
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	alerts, err := c.Alerts.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, alerts)
}

func TestClient_ActiveNullIsNil(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte("null\n"))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	ctx := context.Background()

	sos, err := c.SOS.GetActive(ctx)
	require.NoError(t, err)
	require.Nil(t, sos)

	esc, err := c.Escorts.GetActive(ctx)
	require.NoError(t, err)
	require.Nil(t, esc)

	walk, err := c.FriendWalk.GetActive(ctx)
	require.NoError(t, err)
	require.Nil(t, walk)
}

func TestClient_APIErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
		want   error
		detail string
	}{
		{name: "unauthorized", status: 401, body: `{"error":"Invalid token"}`, want: e.ErrUnauthorized, detail: "Invalid token"},
		{name: "not found", status: 404, body: `{"error":"SOS alert not found"}`, want: e.ErrNotFound, detail: "SOS alert not found"},
		{name: "conflict", status: 409, body: `{"error":"You already have an active Friend Walk"}`, want: e.ErrConflict, detail: "You already have an active Friend Walk"},
		{name: "bad request detail key", status: 400, body: `{"detail":"Please use your Acadia University email (@acadiau.ca)"}`, want: e.ErrInvalidInput, detail: "Please use your Acadia University email (@acadiau.ca)"},
		{name: "plain text", status: 500, body: "boom", want: e.ErrInternal, detail: "boom"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := client.New(srv.URL).SOS.Cancel(context.Background(), uuid.New())
			require.ErrorIs(t, err, tt.want)

			var apiErr *client.APIError
			require.True(t, errors.As(err, &apiErr))
			require.Equal(t, tt.status, apiErr.Status)
			require.Equal(t, tt.detail, client.DetailOf(err))
		})
	}
}

func TestClient_LocationsQuery(t *testing.T) {
	t.Parallel()

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("location_type")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	aed := domain.LocationAED
	_, err := c.Locations.List(context.Background(), &aed)
	require.NoError(t, err)
	require.Equal(t, "aed", gotQuery)
}
