package system

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"acadiasafe/internal/render"
)

// Pinger is satisfied by the storage backends the service depends on.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	logger  *slog.Logger
	checks  map[string]Pinger
	started time.Time
}

func NewHandler(logger *slog.Logger, checks map[string]Pinger) *Handler {
	return &Handler{logger: logger, checks: checks, started: time.Now()}
}

type HealthResponse struct {
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime"`
	Checks  map[string]string `json:"checks,omitempty"`
}

func (h *Handler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Message: "Acadia Safe API",
		Status:  "healthy",
		Uptime:  time.Since(h.started).Truncate(time.Second).String(),
	}
	code := http.StatusOK

	if len(h.checks) > 0 {
		resp.Checks = make(map[string]string, len(h.checks))
		for name, p := range h.checks {
			if err := p.Ping(ctx); err != nil {
				h.logger.Warn("health check failed", slog.String("check", name), slog.Any("error", err))
				resp.Checks[name] = "down"
				resp.Status = "degraded"
				code = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "up"
		}
	}

	render.JSON(w, code, resp)
}
