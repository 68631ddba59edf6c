package sos

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
type SOSService interface {
	Create(ctx context.Context, userID uuid.UUID, req domain.CreateSOSRequest) (*domain.SOSAlert, error)
	Cancel(ctx context.Context, userID, id uuid.UUID) error
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.SOSAlert, error)
}

type Handler struct {
	logger *slog.Logger
	SOS    SOSService
}

func NewHandler(logger *slog.Logger, svc SOSService) *Handler {
	return &Handler{logger: logger, SOS: svc}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, err := common.CurrentUser(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	var req domain.CreateSOSRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, l, err)
		return
	}

	a, err := h.SOS.Create(r.Context(), userID, req)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusCreated, a)
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

	if err := h.SOS.Cancel(r.Context(), userID, id); err != nil {
		render.Error(w, r, l, err)
		return
	}
	l.Info("SOS cancelled", slog.String("sos_id", id.String()))
	render.JSON(w, http.StatusOK, domain.MessageResponse{Message: "SOS alert cancelled"})
}

// Active writes the alert or JSON null.
func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, err := common.CurrentUser(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	a, err := h.SOS.GetActive(r.Context(), userID)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, a)
}
