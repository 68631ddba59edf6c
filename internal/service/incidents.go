package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"
	"acadiasafe/pkg/validator"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

type IncidentService struct {
	repo   IncidentRepository
	notify notifier
	clock  clock.Clock
	logger *slog.Logger
}

func NewIncidentService(repo IncidentRepository, queue NotificationQueue, clk clock.Clock, logger *slog.Logger) *IncidentService {
	return &IncidentService{repo: repo, notify: newNotifier(queue, logger), clock: clk, logger: logger}
}

func (s *IncidentService) Create(ctx context.Context, userID uuid.UUID, req domain.CreateIncidentRequest) (*domain.IncidentReport, error) {
	const op = "service.Incident.Create"

	if len(req.Photos) > domain.MaxIncidentPhotos {
		return nil, fmt.Errorf("%s: %w", op,
			e.WithDetail(e.ErrInvalidInput, fmt.Sprintf("At most %d photos per report", domain.MaxIncidentPhotos)))
	}
	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrInvalidInput, err.Error()))
	}
	if !slices.Contains(domain.IncidentTypes, req.IncidentType) {
		return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrInvalidInput, "Unknown incident type"))
	}

	inc := &domain.IncidentReport{
		ID:           uuid.New(),
		IncidentType: req.IncidentType,
		Lat:          req.Lat,
		Lng:          req.Lng,
		LocationName: req.LocationName,
		Description:  strings.TrimSpace(req.Description),
		Photos:       req.Photos,
		IsAnonymous:  req.IsAnonymous,
		WantsContact: req.WantsContact,
		Status:       domain.IncidentPending,
		CreatedAt:    s.clock.Now().UTC(),
	}
	if !req.IsAnonymous {
		uid := userID
		inc.UserID = &uid
	}
	if req.WantsContact {
		inc.ContactPhone = req.ContactPhone
	}

	if err := s.repo.Create(ctx, inc); err != nil {
		return nil, err
	}
	s.logger.Info("incident reported",
		slog.String("incident_id", inc.ID.String()),
		slog.String("type", inc.IncidentType),
		slog.Int("photos", len(inc.Photos)))

	s.notify.publish(ctx, domain.Notification{
		Kind:       domain.NotifyIncidentCreated,
		SubjectID:  inc.ID,
		Lat:        inc.Lat,
		Lng:        inc.Lng,
		OccurredAt: inc.CreatedAt,
	})
	return inc, nil
}

func (s *IncidentService) Mine(ctx context.Context, userID uuid.UUID) ([]domain.IncidentReport, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *IncidentService) Get(ctx context.Context, id uuid.UUID) (*domain.IncidentReport, error) {
	const op = "service.Incident.Get"

	inc, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, e.WithDetail(err, "Incident not found"))
		}
		return nil, err
	}
	return inc, nil
}

func (s *IncidentService) List(ctx context.Context, page, limit int) ([]domain.IncidentReport, int64, error) {
	return s.repo.List(ctx, page, limit)
}

func (s *IncidentService) UpdateStatus(ctx context.Context, id uuid.UUID, req domain.UpdateIncidentStatusRequest) (*domain.IncidentReport, error) {
	const op = "service.Incident.UpdateStatus"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrInvalidInput, err.Error()))
	}
	inc, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, e.WithDetail(err, "Incident not found"))
		}
		return nil, err
	}
	return inc, nil
}
