package admin

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
type AdminService interface {
	ListIncidents(ctx context.Context, page, limit int) ([]domain.IncidentReport, int64, error)
	UpdateIncidentStatus(ctx context.Context, id uuid.UUID, req domain.UpdateIncidentStatusRequest) (*domain.IncidentReport, error)
	ListActiveSOS(ctx context.Context) ([]domain.SOSAlert, error)
	ResolveSOS(ctx context.Context, id uuid.UUID) error
	BroadcastAlert(ctx context.Context, req domain.CreateAlertRequest) (*domain.CampusAlert, error)
}

type Handler struct {
	logger *slog.Logger
	Admin  AdminService
}

func NewHandler(logger *slog.Logger, admin AdminService) *Handler {
	return &Handler{logger: logger, Admin: admin}
}

type IncidentPage struct {
	Incidents []domain.IncidentReport `json:"incidents"`
	Total     int64                   `json:"total"`
	Page      int                     `json:"page"`
	Limit     int                     `json:"limit"`
}

func (h *Handler) IncidentList(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)
	l.Debug("IncidentList", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	page := common.ParseInt(r.URL.Query().Get("page"), 1)
	limit := common.ParseInt(r.URL.Query().Get("limit"), 20)
	if page < 1 {
		page = 1
	}
	if limit > 100 {
		limit = 100
		l.Warn("limit capped", slog.Int("limit", limit))
	}
	if limit < 1 {
		limit = 20
	}

	incidents, total, err := h.Admin.ListIncidents(r.Context(), page, limit)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	l.Info("incidents listed", slog.Int("count", len(incidents)), slog.Int64("total", total))
	render.JSON(w, http.StatusOK, IncidentPage{Incidents: incidents, Total: total, Page: page, Limit: limit})
}

func (h *Handler) IncidentUpdateStatus(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	id, err := common.PathUUID(r, "id")
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	var req domain.UpdateIncidentStatusRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, l, err)
		return
	}

	inc, err := h.Admin.UpdateIncidentStatus(r.Context(), id, req)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	l.Info("incident status updated", slog.String("id", id.String()), slog.String("status", string(inc.Status)))
	render.JSON(w, http.StatusOK, inc)
}

func (h *Handler) SOSList(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	alerts, err := h.Admin.ListActiveSOS(r.Context())
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, alerts)
}

func (h *Handler) SOSResolve(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	id, err := common.PathUUID(r, "id")
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	if err := h.Admin.ResolveSOS(r.Context(), id); err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, domain.MessageResponse{Message: "SOS alert resolved"})
}

func (h *Handler) AlertBroadcast(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	var req domain.CreateAlertRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, l, err)
		return
	}

	a, err := h.Admin.BroadcastAlert(r.Context(), req)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusCreated, a)
}
