package walks

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
type WalkService interface {
	Start(ctx context.Context, userID uuid.UUID, req domain.StartWalkRequest) (*domain.FriendWalk, error)
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.FriendWalk, error)
	UpdateLocation(ctx context.Context, userID, id uuid.UUID, req domain.UpdateWalkLocationRequest) error
	Extend(ctx context.Context, userID, id uuid.UUID, mins int) (*domain.ExtendWalkResponse, error)
	Complete(ctx context.Context, userID, id uuid.UUID) error
}

type Handler struct {
	logger *slog.Logger
	Walks  WalkService
}

func NewHandler(logger *slog.Logger, svc WalkService) *Handler {
	return &Handler{logger: logger, Walks: svc}
}

func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, err := common.CurrentUser(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	var req domain.StartWalkRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, l, err)
		return
	}

	walk, err := h.Walks.Start(r.Context(), userID, req)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusCreated, walk)
}

func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, err := common.CurrentUser(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	walk, err := h.Walks.GetActive(r.Context(), userID)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, walk)
}

func (h *Handler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, id, err := userAndWalk(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	var req domain.UpdateWalkLocationRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, l, err)
		return
	}

	if err := h.Walks.UpdateLocation(r.Context(), userID, id, req); err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, domain.MessageResponse{Message: "Location updated"})
}

func (h *Handler) Extend(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, id, err := userAndWalk(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	mins := common.ParseInt(r.URL.Query().Get("minutes"), domain.WalkExtendMinutes)
	resp, err := h.Walks.Extend(r.Context(), userID, id, mins)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	l.Info("walk extended", slog.String("walk_id", id.String()), slog.Int("minutes", mins))
	render.JSON(w, http.StatusOK, resp)
}

func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, id, err := userAndWalk(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	if err := h.Walks.Complete(r.Context(), userID, id); err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, domain.MessageResponse{Message: "Friend walk completed"})
}

func userAndWalk(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	userID, err := common.CurrentUser(r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	id, err := common.PathUUID(r, "id")
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	return userID, id, nil
}
