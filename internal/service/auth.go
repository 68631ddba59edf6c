package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"
	"acadiasafe/pkg/validator"

	"github.com/benbjohnson/clock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users        UserRepository
	secret       []byte
	ttl          time.Duration
	campusDomain string
	clock        clock.Clock
	logger       *slog.Logger
}

func NewAuthService(users UserRepository, secret string, ttl time.Duration, campusDomain string, clk clock.Clock, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:        users,
		secret:       []byte(secret),
		ttl:          ttl,
		campusDomain: strings.ToLower(campusDomain),
		clock:        clk,
		logger:       logger,
	}
}

func (s *AuthService) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResponse, error) {
	const op = "service.Auth.Signup"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrInvalidInput, err.Error()))
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.HasSuffix(email, "@"+s.campusDomain) {
		return nil, fmt.Errorf("%s: %w", op,
			e.WithDetail(e.ErrInvalidInput, "Please use your Acadia University email (@"+s.campusDomain+")"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: hash password: %w", op, err)
	}

	u := &domain.User{
		ID:           uuid.New(),
		FullName:     strings.TrimSpace(req.FullName),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, e.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, e.WithDetail(err, "Email already registered"))
		}
		return nil, err
	}

	token, err := s.IssueToken(u.ID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("user registered", slog.String("user_id", u.ID.String()))
	return &domain.AuthResponse{Token: token, User: *u}, nil
}

func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	const op = "service.Auth.Login"

	invalid := e.WithDetail(e.ErrUnauthorized, "Invalid email or password")

	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, invalid)
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, invalid)
	}

	token, err := s.IssueToken(u.ID)
	if err != nil {
		return nil, err
	}
	return &domain.AuthResponse{Token: token, User: *u}, nil
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	const op = "service.Auth.Me"

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrUnauthorized, "User not found"))
		}
		return nil, err
	}
	return u, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, req domain.UpdateProfileRequest) (*domain.User, error) {
	const op = "service.Auth.UpdateProfile"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrInvalidInput, err.Error()))
	}
	if req.Empty() {
		return s.Me(ctx, userID)
	}
	u, err := s.users.Update(ctx, userID, req)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrUnauthorized, "User not found"))
		}
		return nil, err
	}
	return u, nil
}

// IssueToken signs an HS256 token whose subject is the user id.
func (s *AuthService) IssueToken(userID uuid.UUID) (string, error) {
	now := s.clock.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("service.Auth.IssueToken: %w", err)
	}
	return signed, nil
}

func (s *AuthService) ParseToken(token string) (uuid.UUID, error) {
	const op = "service.Auth.ParseToken"

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrUnauthorized, "Invalid token"))
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrUnauthorized, "Invalid token"))
	}
	return id, nil
}
