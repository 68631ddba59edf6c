package service

import (
	"context"

	"acadiasafe/internal/domain"

	"github.com/google/uuid"
)

// The admin surface spans several use cases; Service forwards to them so the
// admin handler depends on a single value.

func (s *Service) ListIncidents(ctx context.Context, page, limit int) ([]domain.IncidentReport, int64, error) {
	return s.Incidents.List(ctx, page, limit)
}

func (s *Service) UpdateIncidentStatus(ctx context.Context, id uuid.UUID, req domain.UpdateIncidentStatusRequest) (*domain.IncidentReport, error) {
	return s.Incidents.UpdateStatus(ctx, id, req)
}

func (s *Service) ListActiveSOS(ctx context.Context) ([]domain.SOSAlert, error) {
	return s.SOS.ListActive(ctx)
}

func (s *Service) ResolveSOS(ctx context.Context, id uuid.UUID) error {
	return s.SOS.Resolve(ctx, id)
}

func (s *Service) BroadcastAlert(ctx context.Context, req domain.CreateAlertRequest) (*domain.CampusAlert, error) {
	return s.Campus.CreateAlert(ctx, req)
}
