package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"
	"acadiasafe/pkg/validator"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

type SOSService struct {
	repo     SOSRepository
	users    UserRepository
	contacts ContactRepository
	notify   notifier
	clock    clock.Clock
	logger   *slog.Logger
}

func NewSOSService(repo SOSRepository, users UserRepository, contacts ContactRepository, queue NotificationQueue, clk clock.Clock, logger *slog.Logger) *SOSService {
	return &SOSService{
		repo:     repo,
		users:    users,
		contacts: contacts,
		notify:   newNotifier(queue, logger),
		clock:    clk,
		logger:   logger,
	}
}

func (s *SOSService) Create(ctx context.Context, userID uuid.UUID, req domain.CreateSOSRequest) (*domain.SOSAlert, error) {
	const op = "service.SOS.Create"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrInvalidCoordinates, err.Error()))
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	a := &domain.SOSAlert{
		ID:        uuid.New(),
		UserID:    userID,
		UserName:  u.FullName,
		UserPhone: u.Phone,
		Lat:       req.Lat,
		Lng:       req.Lng,
		AlertType: req.AlertType,
		Status:    domain.SOSActive,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Warn("SOS alert raised",
		slog.String("sos_id", a.ID.String()),
		slog.String("user_id", userID.String()),
		slog.Float64("lat", a.Lat),
		slog.Float64("lng", a.Lng))

	s.notify.publish(ctx, domain.Notification{
		Kind:       domain.NotifySOSCreated,
		UserID:     userID,
		SubjectID:  a.ID,
		ContactIDs: s.contactIDs(ctx, userID),
		Lat:        a.Lat,
		Lng:        a.Lng,
		OccurredAt: a.CreatedAt,
	})
	return a, nil
}

func (s *SOSService) Cancel(ctx context.Context, userID, id uuid.UUID) error {
	const op = "service.SOS.Cancel"

	if err := s.repo.Cancel(ctx, userID, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, e.WithDetail(err, "SOS alert not found"))
		}
		return err
	}

	s.notify.publish(ctx, domain.Notification{
		Kind:       domain.NotifySOSCancelled,
		UserID:     userID,
		SubjectID:  id,
		ContactIDs: s.contactIDs(ctx, userID),
		OccurredAt: s.clock.Now().UTC(),
	})
	return nil
}

// GetActive returns (nil, nil) when the user has no active alert.
func (s *SOSService) GetActive(ctx context.Context, userID uuid.UUID) (*domain.SOSAlert, error) {
	a, err := s.repo.GetActive(ctx, userID)
	if errors.Is(err, e.ErrNotFound) {
		return nil, nil
	}
	return a, err
}

func (s *SOSService) ListActive(ctx context.Context) ([]domain.SOSAlert, error) {
	return s.repo.ListActive(ctx)
}

func (s *SOSService) Resolve(ctx context.Context, id uuid.UUID) error {
	const op = "service.SOS.Resolve"

	if err := s.repo.Resolve(ctx, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, e.WithDetail(err, "Active SOS alert not found"))
		}
		return err
	}
	s.logger.Info("SOS alert resolved", slog.String("sos_id", id.String()))
	return nil
}

func (s *SOSService) contactIDs(ctx context.Context, userID uuid.UUID) []uuid.UUID {
	contacts, err := s.contacts.List(ctx, userID)
	if err != nil {
		s.logger.Warn("list contacts for notification failed", slog.Any("error", err))
		return nil
	}
	ids := make([]uuid.UUID, 0, len(contacts))
	for _, c := range contacts {
		ids = append(ids, c.ID)
	}
	return ids
}
