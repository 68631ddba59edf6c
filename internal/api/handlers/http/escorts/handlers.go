package escorts

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
type EscortService interface {
	Create(ctx context.Context, userID uuid.UUID, req domain.CreateEscortRequest) (*domain.EscortRequest, error)
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.EscortRequest, error)
	Cancel(ctx context.Context, userID, id uuid.UUID) error
	Assign(ctx context.Context, id uuid.UUID) (*domain.EscortRequest, error)
}

type Handler struct {
	logger  *slog.Logger
	Escorts EscortService
}

func NewHandler(logger *slog.Logger, svc EscortService) *Handler {
	return &Handler{logger: logger, Escorts: svc}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, err := common.CurrentUser(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	var req domain.CreateEscortRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, l, err)
		return
	}

	esc, err := h.Escorts.Create(r.Context(), userID, req)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusCreated, esc)
}

func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, err := common.CurrentUser(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	esc, err := h.Escorts.GetActive(r.Context(), userID)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, esc)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, err := common.CurrentUser(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	id, err := common.PathUUID(r, "id")
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	if err := h.Escorts.Cancel(r.Context(), userID, id); err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, domain.MessageResponse{Message: "Escort request cancelled"})
}

// Assign is the unauthenticated demo hook that puts an officer on a request.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	id, err := common.PathUUID(r, "id")
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	if _, err := h.Escorts.Assign(r.Context(), id); err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, domain.MessageResponse{Message: "Officer assigned"})
}
