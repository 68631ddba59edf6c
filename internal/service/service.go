package service

import (
	"context"
	"time"

	"acadiasafe/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, req domain.UpdateProfileRequest) (*domain.User, error)
}

type ContactRepository interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.TrustedContact, error)
	Create(ctx context.Context, c *domain.TrustedContact) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type SOSRepository interface {
	Create(ctx context.Context, a *domain.SOSAlert) error
	Cancel(ctx context.Context, userID, id uuid.UUID) error
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.SOSAlert, error)
	ListActive(ctx context.Context) ([]domain.SOSAlert, error)
	Resolve(ctx context.Context, id uuid.UUID) error
}

type IncidentRepository interface {
	Create(ctx context.Context, inc *domain.IncidentReport) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.IncidentReport, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.IncidentReport, error)
	List(ctx context.Context, page, limit int) ([]domain.IncidentReport, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.IncidentStatus) (*domain.IncidentReport, error)
}

type EscortRepository interface {
	Create(ctx context.Context, req *domain.EscortRequest) error
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.EscortRequest, error)
	Cancel(ctx context.Context, userID, id uuid.UUID) error
	Assign(ctx context.Context, id uuid.UUID, officer string, wait int) (*domain.EscortRequest, error)
	ListPendingBefore(ctx context.Context, before time.Time, limit int) ([]domain.EscortRequest, error)
}

type WalkRepository interface {
	Create(ctx context.Context, w *domain.FriendWalk) error
	GetActive(ctx context.Context, userID uuid.UUID) (*domain.FriendWalk, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*domain.FriendWalk, error)
	UpdateLocation(ctx context.Context, userID, id uuid.UUID, lat, lng float64) error
	Extend(ctx context.Context, userID, id uuid.UUID, minutes int) (*domain.FriendWalk, error)
	Complete(ctx context.Context, userID, id uuid.UUID) (*domain.FriendWalk, error)
}

type CampusRepository interface {
	ListAlerts(ctx context.Context) ([]domain.CampusAlert, error)
	GetAlert(ctx context.Context, id uuid.UUID) (*domain.CampusAlert, error)
	CreateAlert(ctx context.Context, a *domain.CampusAlert) error
	ListLocations(ctx context.Context, locType *domain.LocationType) ([]domain.CampusLocation, error)
	Seed(ctx context.Context, alerts []domain.CampusAlert, locations []domain.CampusLocation) error
}

// CampusCacheService reports a miss as (nil, nil).
type CampusCacheService interface {
	GetAlerts(ctx context.Context) ([]domain.CampusAlert, error)
	SetAlerts(ctx context.Context, alerts []domain.CampusAlert) error
	GetLocations(ctx context.Context, locType *domain.LocationType) ([]domain.CampusLocation, error)
	SetLocations(ctx context.Context, locType *domain.LocationType, locs []domain.CampusLocation) error
	InvalidateAlerts(ctx context.Context) error
	InvalidateAll(ctx context.Context) error
}

type NotificationQueue interface {
	Enqueue(ctx context.Context, n domain.Notification) error
}

// Service groups the use cases handed to the HTTP layer.
type Service struct {
	Auth      *AuthService
	Contacts  *ContactService
	SOS       *SOSService
	Incidents *IncidentService
	Escorts   *EscortService
	Walks     *WalkService
	Campus    *CampusService
}

func NewService(
	auth *AuthService,
	contacts *ContactService,
	sos *SOSService,
	incidents *IncidentService,
	escorts *EscortService,
	walks *WalkService,
	campus *CampusService,
) *Service {
	return &Service{
		Auth:      auth,
		Contacts:  contacts,
		SOS:       sos,
		Incidents: incidents,
		Escorts:   escorts,
		Walks:     walks,
		Campus:    campus,
	}
}
