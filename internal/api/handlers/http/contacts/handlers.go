package contacts

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
type ContactService interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.TrustedContact, error)
	Add(ctx context.Context, userID uuid.UUID, req domain.CreateContactRequest) (*domain.TrustedContact, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type Handler struct {
	logger   *slog.Logger
	Contacts ContactService
}

func NewHandler(logger *slog.Logger, contacts ContactService) *Handler {
	return &Handler{logger: logger, Contacts: contacts}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, err := common.CurrentUser(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	list, err := h.Contacts.List(r.Context(), userID)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, list)
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	l := common.Logger(h.logger, r)

	userID, err := common.CurrentUser(r)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}

	var req domain.CreateContactRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, l, err)
		return
	}

	c, err := h.Contacts.Add(r.Context(), userID, req)
	if err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusCreated, c)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.Contacts.Delete(r.Context(), userID, id); err != nil {
		render.Error(w, r, l, err)
		return
	}
	render.JSON(w, http.StatusOK, domain.MessageResponse{Message: "Contact deleted"})
}
