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

type CampusService struct {
	repo   CampusRepository
	cache  CampusCacheService
	clock  clock.Clock
	logger *slog.Logger
}

// NewCampusService accepts a nil cache; reads then always hit the repository.
func NewCampusService(repo CampusRepository, cache CampusCacheService, clk clock.Clock, logger *slog.Logger) *CampusService {
	return &CampusService{repo: repo, cache: cache, clock: clk, logger: logger}
}

func (s *CampusService) ListAlerts(ctx context.Context) ([]domain.CampusAlert, error) {
	if s.cache != nil {
		cached, err := s.cache.GetAlerts(ctx)
		if err != nil {
			s.logger.Warn("alerts cache read failed", slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	alerts, err := s.repo.ListAlerts(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetAlerts(ctx, alerts); err != nil {
			s.logger.Warn("alerts cache write failed", slog.Any("error", err))
		}
	}
	return alerts, nil
}

func (s *CampusService) GetAlert(ctx context.Context, id uuid.UUID) (*domain.CampusAlert, error) {
	const op = "service.Campus.GetAlert"

	a, err := s.repo.GetAlert(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, e.WithDetail(err, "Alert not found"))
		}
		return nil, err
	}
	return a, nil
}

func (s *CampusService) CreateAlert(ctx context.Context, req domain.CreateAlertRequest) (*domain.CampusAlert, error) {
	const op = "service.Campus.CreateAlert"

	if err := validator.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrInvalidInput, err.Error()))
	}

	a := &domain.CampusAlert{
		ID:        uuid.New(),
		AlertType: req.AlertType,
		Title:     req.Title,
		Message:   req.Message,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.repo.CreateAlert(ctx, a); err != nil {
		return nil, err
	}
	s.invalidate(ctx, false)
	s.logger.Info("campus alert broadcast", slog.String("alert_id", a.ID.String()), slog.String("type", string(a.AlertType)))
	return a, nil
}

func (s *CampusService) ListLocations(ctx context.Context, locType *domain.LocationType) ([]domain.CampusLocation, error) {
	const op = "service.Campus.ListLocations"

	if locType != nil && !domain.ValidLocationType(*locType) {
		return nil, fmt.Errorf("%s: %w", op, e.WithDetail(e.ErrInvalidInput, "Unknown location type "+string(*locType)))
	}

	if s.cache != nil {
		cached, err := s.cache.GetLocations(ctx, locType)
		if err != nil {
			s.logger.Warn("locations cache read failed", slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	locs, err := s.repo.ListLocations(ctx, locType)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetLocations(ctx, locType, locs); err != nil {
			s.logger.Warn("locations cache write failed", slog.Any("error", err))
		}
	}
	return locs, nil
}

// Seed replaces the reference alerts and locations; running it twice leaves
// the same counts.
func (s *CampusService) Seed(ctx context.Context) (*domain.SeedResponse, error) {
	alerts := domain.SeedAlerts(s.clock.Now().UTC())
	locations := domain.SeedLocations()

	if err := s.repo.Seed(ctx, alerts, locations); err != nil {
		return nil, err
	}
	s.invalidate(ctx, true)

	return &domain.SeedResponse{
		Message:   "Data seeded successfully",
		Alerts:    len(alerts),
		Locations: len(locations),
	}, nil
}

func (s *CampusService) invalidate(ctx context.Context, all bool) {
	if s.cache == nil {
		return
	}
	var err error
	if all {
		err = s.cache.InvalidateAll(ctx)
	} else {
		err = s.cache.InvalidateAlerts(ctx)
	}
	if err != nil {
		s.logger.Warn("campus cache invalidate failed", slog.Any("error", err))
	}
}
