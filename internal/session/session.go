// Package session owns the signed-in identity and its bearer token. A
// Session is created once by the caller and passed to whatever needs it.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"acadiasafe/internal/client"
	"acadiasafe/internal/domain"
	"acadiasafe/internal/forms"
	"acadiasafe/pkg/e"
)

type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

//go:generate mockgen -source=session.go -destination=mocks/mock.go

// AuthAPI is the slice of the API client the session needs.
type AuthAPI interface {
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
	Me(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.User, error)
}

// AuthError is a credential or signup rejection from the server.
type AuthError struct {
	Detail string
	Err    error
}

func (a *AuthError) Error() string { return a.Detail }

func (a *AuthError) Unwrap() error { return a.Err }

type Session struct {
	api    AuthAPI
	store  TokenStore
	logger *slog.Logger

	mu     sync.RWMutex
	status Status
	user   *domain.User
	token  string
}

func New(api AuthAPI, store TokenStore, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Session{api: api, store: store, logger: logger, status: StatusLoading}
}

// Restore re-establishes the saved session. Any failure ends
// unauthenticated with the stored token removed.
func (s *Session) Restore(ctx context.Context) {
	tok, err := s.store.Load()
	if err != nil {
		s.logger.Warn("token load failed", slog.Any("error", err))
	}
	if err != nil || tok == "" {
		s.reset()
		return
	}

	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()

	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Info("saved session rejected", slog.Any("error", err))
		s.reset()
		return
	}
	s.set(tok, user)
}

func (s *Session) Login(ctx context.Context, f forms.Login) error {
	f = f.Normalize()
	if err := forms.Validate(f); err != nil {
		return err
	}
	resp, err := s.api.Login(ctx, f.Request())
	if err != nil {
		return authError(err)
	}
	s.establish(resp)
	return nil
}

// Signup validates locally first and makes no request when the form is bad.
func (s *Session) Signup(ctx context.Context, f forms.Signup) error {
	f = f.Normalize()
	if err := forms.Validate(f); err != nil {
		return err
	}
	resp, err := s.api.Signup(ctx, f.Request())
	if err != nil {
		return authError(err)
	}
	s.establish(resp)
	return nil
}

// Logout forgets the session locally; the server is not contacted.
func (s *Session) Logout() {
	s.reset()
}

func (s *Session) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.User, error) {
	if s.Status() != StatusAuthenticated {
		return nil, e.WithDetail(e.ErrUnauthorized, "Not signed in")
	}
	user, err := s.api.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return copyUser(user), nil
}

// RefreshUser re-reads the identity; a rejected token signs the user out.
func (s *Session) RefreshUser(ctx context.Context) error {
	if s.Status() != StatusAuthenticated {
		return e.WithDetail(e.ErrUnauthorized, "Not signed in")
	}
	user, err := s.api.Me(ctx)
	if err != nil {
		if errors.Is(err, e.ErrUnauthorized) {
			s.reset()
		}
		return err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyUser(s.user)
}

// Token satisfies client.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) establish(resp *domain.AuthResponse) {
	if err := s.store.Save(resp.Token); err != nil {
		s.logger.Warn("token save failed; session will not survive restart", slog.Any("error", err))
	}
	user := resp.User
	s.set(resp.Token, &user)
	s.logger.Debug("signed in", slog.String("user_id", user.ID.String()))
}

func (s *Session) set(tok string, user *domain.User) {
	s.mu.Lock()
	s.token = tok
	s.user = user
	s.status = StatusAuthenticated
	s.mu.Unlock()
}

func (s *Session) reset() {
	if err := s.store.Clear(); err != nil {
		s.logger.Warn("token clear failed", slog.Any("error", err))
	}
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.status = StatusUnauthenticated
	s.mu.Unlock()
}

func authError(err error) error {
	if errors.Is(err, e.ErrUnauthorized) || errors.Is(err, e.ErrInvalidInput) || errors.Is(err, e.ErrConflict) {
		return &AuthError{Detail: client.DetailOf(err), Err: err}
	}
	return err
}

func copyUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
