package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"
	"acadiasafe/pkg/validator"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

const dispatchBatch = 50

type EscortService struct {
	repo        EscortRepository
	notify      notifier
	assignAfter time.Duration
	clock       clock.Clock
	logger      *slog.Logger
}

func NewEscortService(repo EscortRepository, queue NotificationQueue, assignAfter time.Duration, clk clock.Clock, logger *slog.Logger) *EscortService {
	return &EscortService{
		repo:        repo,
		notify:      newNotifier(queue, logger),
		assignAfter: assignAfter,
		clock:       clk,
		logger:      logger,
	}
}

func (s *EscortService) Create(ctx context.Context, userID uuid.UUID, req domain.CreateEscortRequest) (*domain.EscortRequest, error) {
	const op = "service.Escort.Create"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrInvalidCoordinates, err.Error()))
	}

	pickup := req.PickupName
	if pickup == nil || *pickup == "" {
		name := domain.DefaultPickupName
		pickup = &name
	}

	r := &domain.EscortRequest{
		ID:              uuid.New(),
		UserID:          userID,
		PickupLat:       req.PickupLat,
		PickupLng:       req.PickupLng,
		PickupName:      pickup,
		DestinationLat:  req.DestinationLat,
		DestinationLng:  req.DestinationLng,
		DestinationName: req.DestinationName,
		Notes:           req.Notes,
		Status:          domain.EscortPending,
		EstimatedWait:   domain.EscortInitialWait,
		CreatedAt:       s.clock.Now().UTC(),
	}
	if err := s.repo.Create(ctx, r); err != nil {
		if errors.Is(err, e.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, e.WithDetail(err, "You already have an active escort request"))
		}
		return nil, err
	}
	s.logger.Info("escort requested", slog.String("escort_id", r.ID.String()))
	return r, nil
}

// GetActive returns (nil, nil) when nothing is pending or assigned.
func (s *EscortService) GetActive(ctx context.Context, userID uuid.UUID) (*domain.EscortRequest, error) {
	r, err := s.repo.GetActive(ctx, userID)
	if errors.Is(err, e.ErrNotFound) {
		return nil, nil
	}
	return r, err
}

func (s *EscortService) Cancel(ctx context.Context, userID, id uuid.UUID) error {
	const op = "service.Escort.Cancel"

	if err := s.repo.Cancel(ctx, userID, id); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, e.WithDetail(err, "Escort request not found"))
		}
		return err
	}
	return nil
}

// Assign hands a pending request to the duty officer.
func (s *EscortService) Assign(ctx context.Context, id uuid.UUID) (*domain.EscortRequest, error) {
	const op = "service.Escort.Assign"

	r, err := s.repo.Assign(ctx, id, domain.DefaultOfficerName, domain.EscortAssignedWait)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, e.WithDetail(err, "Pending escort request not found"))
		}
		return nil, err
	}

	s.logger.Info("officer assigned",
		slog.String("escort_id", r.ID.String()),
		slog.String("officer", domain.DefaultOfficerName))
	s.notify.publish(ctx, domain.Notification{
		Kind:       domain.NotifyEscortAssigned,
		UserID:     r.UserID,
		SubjectID:  r.ID,
		Lat:        r.PickupLat,
		Lng:        r.PickupLng,
		OccurredAt: s.clock.Now().UTC(),
	})
	return r, nil
}

// DispatchPending assigns every request that has waited at least
// assignAfter and reports how many were assigned.
func (s *EscortService) DispatchPending(ctx context.Context) (int, error) {
	cutoff := s.clock.Now().UTC().Add(-s.assignAfter)

	pending, err := s.repo.ListPendingBefore(ctx, cutoff, dispatchBatch)
	if err != nil {
		return 0, err
	}

	assigned := 0
	for _, r := range pending {
		if _, err := s.Assign(ctx, r.ID); err != nil {
			// cancelled or assigned by someone else in the meantime
			if errors.Is(err, e.ErrNotFound) {
				continue
			}
			return assigned, err
		}
		assigned++
	}
	return assigned, nil
}
