package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"
	"acadiasafe/pkg/validator"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

type ContactService struct {
	repo   ContactRepository
	clock  clock.Clock
	logger *slog.Logger
}

func NewContactService(repo ContactRepository, clk clock.Clock, logger *slog.Logger) *ContactService {
	return &ContactService{repo: repo, clock: clk, logger: logger}
}

func (s *ContactService) List(ctx context.Context, userID uuid.UUID) ([]domain.TrustedContact, error) {
	return s.repo.List(ctx, userID)
}

func (s *ContactService) Add(ctx context.Context, userID uuid.UUID, req domain.CreateContactRequest) (*domain.TrustedContact, error) {
	const op = "service.Contact.Add"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrInvalidInput, "Name and phone are required"))
	}

	c := &domain.TrustedContact{
		ID:           uuid.New(),
		UserID:       userID,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		Relationship: req.Relationship,
		CreatedAt:    s.clock.Now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContactService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const op = "service.Contact.Delete"

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, e.WithDetail(err, "Contact not found"))
		}
		return err
	}
	return nil
}
