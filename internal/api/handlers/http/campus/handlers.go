package campus

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
type CampusService interface {
	ListAlerts(ctx context.Context) ([]domain.CampusAlert, error)
	GetAlert(ctx context.Context, id uuid.UUID) (*domain.CampusAlert, error)
	ListLocations(ctx context.Context, locType *domain.LocationType) ([]domain.CampusLocation, error)
	Seed(ctx context.Context) (*domain.SeedResponse, error)
}

type Handler struct {
	logger *slog.Logger
	Campus CampusService
}

func NewHandler(logger *slog.Logger, svc CampusService) *Handler {
	return &Handler{logger: logger, Campus: svc}
}

func (h *Handler) Alerts(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	alerts, err := h.Campus.ListAlerts(r.Context())
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, alerts)
}

func (h *Handler) Alert(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	id, err := common.PathUUID(r, "id")
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	a, err := h.Campus.GetAlert(r.Context(), id)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, a)
}

func (h *Handler) Locations(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	var locType *domain.LocationType
	if raw := r.URL.Query().Get("location_type"); raw != "" {
		t := domain.LocationType(raw)
		locType = &t
	}

	locs, err := h.Campus.ListLocations(r.Context(), locType)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, locs)
}

func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	resp, err := h.Campus.Seed(r.Context())
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	l.Info("campus data seeded", slog.Int("alerts", resp.Alerts), slog.Int("locations", resp.Locations))
	render.JSON(w, http.StatusOK, resp)
}
