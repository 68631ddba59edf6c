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

type WalkService struct {
	repo     WalkRepository
	contacts ContactRepository
	notify   notifier
	clock    clock.Clock
	logger   *slog.Logger
}

func NewWalkService(repo WalkRepository, contacts ContactRepository, queue NotificationQueue, clk clock.Clock, logger *slog.Logger) *WalkService {
	return &WalkService{
		repo:     repo,
		contacts: contacts,
		notify:   newNotifier(queue, logger),
		clock:    clk,
		logger:   logger,
	}
}

func (s *WalkService) Start(ctx context.Context, userID uuid.UUID, req domain.StartWalkRequest) (*domain.FriendWalk, error) {
	const op = "service.Walk.Start"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op,
			e.WithDetail(e.ErrInvalidInput, "Select at least one contact and a duration of 0, 15, 30 or 60 minutes"))
	}
	if err := s.checkContacts(ctx, userID, req.ContactIDs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	start := s.clock.Now().UTC()
	w := &domain.FriendWalk{
		ID:              uuid.New(),
		UserID:          userID,
		ContactIDs:      req.ContactIDs,
		StartTime:       start,
		DurationMinutes: req.DurationMinutes,
		CurrentLat:      req.Lat,
		CurrentLng:      req.Lng,
		Status:          domain.WalkActive,
	}
	if req.DurationMinutes > 0 {
		end := start.Add(minutes(req.DurationMinutes))
		w.EndTime = &end
	}

	if err := s.repo.Create(ctx, w); err != nil {
		if errors.Is(err, e.ErrConflict) {
			return nil, fmt.Errorf("%s: %w", op, e.WithDetail(err, "You already have an active Friend Walk"))
		}
		return nil, err
	}

	s.logger.Info("friend walk started",
		slog.String("walk_id", w.ID.String()),
		slog.Int("duration_minutes", w.DurationMinutes),
		slog.Int("contacts", len(w.ContactIDs)))
	s.publish(ctx, domain.NotifyWalkStarted, w)
	return w, nil
}

// GetActive returns (nil, nil) when no walk is active.
func (s *WalkService) GetActive(ctx context.Context, userID uuid.UUID) (*domain.FriendWalk, error) {
	w, err := s.repo.GetActive(ctx, userID)
	if errors.Is(err, e.ErrNotFound) {
		return nil, nil
	}
	return w, err
}

func (s *WalkService) UpdateLocation(ctx context.Context, userID, id uuid.UUID, req domain.UpdateWalkLocationRequest) error {
	const op = "service.Walk.UpdateLocation"

	if err := validator.ValidateStruct(req); err != nil {
		return fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrInvalidCoordinates, err.Error()))
	}
	if err := s.repo.UpdateLocation(ctx, userID, id, req.Lat, req.Lng); err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, e.WithDetail(err, "Friend walk not found"))
		}
		return err
	}
	return nil
}

func (s *WalkService) Extend(ctx context.Context, userID, id uuid.UUID, mins int) (*domain.ExtendWalkResponse, error) {
	const op = "service.Walk.Extend"

	if mins <= 0 || mins > 120 {
		return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrInvalidInput, "minutes must be between 1 and 120"))
	}

	cur, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, e.WithDetail(err, "Friend walk not found"))
		}
		return nil, err
	}
	if cur.Status != domain.WalkActive {
		return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrConflict, "Friend walk is not active"))
	}
	if cur.EndTime == nil {
		return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrConflict, "Friend walk has no end time"))
	}

	w, err := s.repo.Extend(ctx, userID, id, mins)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, domain.NotifyWalkExtended, w)
	return &domain.ExtendWalkResponse{Message: "Walk extended", NewEndTime: *w.EndTime}, nil
}

func (s *WalkService) Complete(ctx context.Context, userID, id uuid.UUID) error {
	const op = "service.Walk.Complete"

	w, err := s.repo.Complete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, e.WithDetail(err, "Active friend walk not found"))
		}
		return err
	}
	s.logger.Info("friend walk completed", slog.String("walk_id", w.ID.String()))
	s.publish(ctx, domain.NotifyWalkCompleted, w)
	return nil
}

func (s *WalkService) checkContacts(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	owned, err := s.contacts.List(ctx, userID)
	if err != nil {
		return err
	}
	known := make(map[uuid.UUID]struct{}, len(owned))
	for _, c := range owned {
		known[c.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			return e.WithDetail(e.ErrInvalidInput, "Unknown trusted contact "+id.String())
		}
	}
	return nil
}

func (s *WalkService) publish(ctx context.Context, kind domain.NotificationKind, w *domain.FriendWalk) {
	s.notify.publish(ctx, domain.Notification{
		Kind:       kind,
		UserID:     w.UserID,
		SubjectID:  w.ID,
		ContactIDs: w.ContactIDs,
		Lat:        w.CurrentLat,
		Lng:        w.CurrentLng,
		OccurredAt: s.clock.Now().UTC(),
	})
}
