package auth

import (
	"context"
	"log/slog"
	"net/http"

	"acadiasafe/internal/api/handlers/http/common"
	"acadiasafe/internal/domain"
	"acadiasafe/internal/render"

	"github.com/google/uuid"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type AuthService interface {
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
	Me(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req domain.UpdateProfileRequest) (*domain.User, error)
}

type Handler struct {
	logger *slog.Logger
	Auth   AuthService
}

func NewHandler(logger *slog.Logger, auth AuthService) *Handler {
	return &Handler{logger: logger, Auth: auth}
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	var req domain.SignupRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, l, err)
		return
	}

	resp, err := h.Auth.Signup(r.Context(), req)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	l.Info("signup", slog.String("user_id", resp.User.ID.String()))
	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	var req domain.LoginRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, l, err)
		return
	}

	resp, err := h.Auth.Login(r.Context(), req)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, err := common.CurrentUser(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	u, err := h.Auth.Me(r.Context(), userID)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, u)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, err := common.CurrentUser(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	var req domain.UpdateProfileRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, l, err)
		return
	}

	u, err := h.Auth.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, u)
}
