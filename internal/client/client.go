// Package client is the API gateway used by the session holder and the
// flow controllers. It adds the bearer token to every request and turns
// non-2xx answers into *APIError. It never retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"
)

// TokenSource supplies the bearer token; empty means anonymous.
type TokenSource interface {
	Token() string
}

type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

type Client struct {
	base   string
	http   *http.Client
	logger *slog.Logger

	mu     sync.RWMutex
	tokens TokenSource

	Auth       *AuthAPI
	Contacts   *ContactsAPI
	SOS        *SOSAPI
	Incidents  *IncidentsAPI
	Escorts    *EscortsAPI
	FriendWalk *FriendWalkAPI
	Alerts     *AlertsAPI
	Locations  *LocationsAPI
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New builds a client for baseURL; every call is issued under baseURL/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/") + "/api",
		http:   &http.Client{Timeout: 15 * time.Second},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Auth = &AuthAPI{c}
	c.Contacts = &ContactsAPI{c}
	c.SOS = &SOSAPI{c}
	c.Incidents = &IncidentsAPI{c}
	c.Escorts = &EscortsAPI{c}
	c.FriendWalk = &FriendWalkAPI{c}
	c.Alerts = &AlertsAPI{c}
	c.Locations = &LocationsAPI{c}
	return c
}

// SetTokenSource swaps the token provider, typically once the session
// holder that owns the token has been built around this client.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	c.tokens = ts
	c.mu.Unlock()
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

const maxErrorBody = 64 << 10

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("client: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed", slog.String("method", method), slog.String("path", path), slog.Any("error", err))
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request done",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("client: decode %s %s: %w", method, path, err)
	}
	return nil
}

func newAPIError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	detail := ""
	if json.Unmarshal(raw, &payload) == nil {
		detail = payload.Error
		if detail == "" {
			detail = payload.Detail
		}
	}
	if detail == "" {
		detail = strings.TrimSpace(string(raw))
	}
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Detail: detail}
}
