package incidents

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
type IncidentService interface {
	Create(ctx context.Context, userID uuid.UUID, req domain.CreateIncidentRequest) (*domain.IncidentReport, error)
	Mine(ctx context.Context, userID uuid.UUID) ([]domain.IncidentReport, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.IncidentReport, error)
}

type Handler struct {
	logger    *slog.Logger
	Incidents IncidentService
}

func NewHandler(logger *slog.Logger, svc IncidentService) *Handler {
	return &Handler{logger: logger, Incidents: svc}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, err := common.CurrentUser(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	var req domain.CreateIncidentRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, l, err)
		return
	}

	inc, err := h.Incidents.Create(r.Context(), userID, req)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	l.Info("incident created", slog.String("reference", domain.ReferenceCode(inc.ID)))
	render.JSON(w, http.StatusCreated, inc)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, err := common.CurrentUser(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	list, err := h.Incidents.Mine(r.Context(), userID)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	id, err := common.PathUUID(r, "id")
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	inc, err := h.Incidents.Get(r.Context(), id)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, inc)
}
