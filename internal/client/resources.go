package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"acadiasafe/internal/domain"

	"github.com/google/uuid"
)

type AuthAPI struct{ c *Client }

func (a *AuthAPI) Signup(ctx context.Context, req domain.SignupRequest) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := a.c.do(ctx, http.MethodPost, "/auth/signup", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := a.c.do(ctx, http.MethodPost, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := a.c.do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuthAPI) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest) (*domain.User, error) {
	var out domain.User
	if err := a.c.do(ctx, http.MethodPut, "/auth/profile", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ContactsAPI struct{ c *Client }

func (a *ContactsAPI) List(ctx context.Context) ([]domain.TrustedContact, error) {
	var out []domain.TrustedContact
	err := a.c.do(ctx, http.MethodGet, "/contacts", nil, &out)
	return out, err
}

func (a *ContactsAPI) Add(ctx context.Context, req domain.CreateContactRequest) (*domain.TrustedContact, error) {
	var out domain.TrustedContact
	if err := a.c.do(ctx, http.MethodPost, "/contacts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *ContactsAPI) Delete(ctx context.Context, id uuid.UUID) error {
	return a.c.do(ctx, http.MethodDelete, "/contacts/"+id.String(), nil, nil)
}

type SOSAPI struct{ c *Client }

func (a *SOSAPI) Create(ctx context.Context, req domain.CreateSOSRequest) (*domain.SOSAlert, error) {
	var out domain.SOSAlert
	if err := a.c.do(ctx, http.MethodPost, "/sos", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *SOSAPI) Cancel(ctx context.Context, id uuid.UUID) error {
	return a.c.do(ctx, http.MethodPut, "/sos/"+id.String()+"/cancel", nil, nil)
}

// GetActive returns (nil, nil) when the caller has no active alert.
func (a *SOSAPI) GetActive(ctx context.Context) (*domain.SOSAlert, error) {
	var out *domain.SOSAlert
	err := a.c.do(ctx, http.MethodGet, "/sos/active", nil, &out)
	return out, err
}

type IncidentsAPI struct{ c *Client }

func (a *IncidentsAPI) Create(ctx context.Context, req domain.CreateIncidentRequest) (*domain.IncidentReport, error) {
	var out domain.IncidentReport
	if err := a.c.do(ctx, http.MethodPost, "/incidents", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *IncidentsAPI) Mine(ctx context.Context) ([]domain.IncidentReport, error) {
	var out []domain.IncidentReport
	err := a.c.do(ctx, http.MethodGet, "/incidents/my", nil, &out)
	return out, err
}

func (a *IncidentsAPI) Get(ctx context.Context, id uuid.UUID) (*domain.IncidentReport, error) {
	var out domain.IncidentReport
	if err := a.c.do(ctx, http.MethodGet, "/incidents/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type EscortsAPI struct{ c *Client }

func (a *EscortsAPI) Create(ctx context.Context, req domain.CreateEscortRequest) (*domain.EscortRequest, error) {
	var out domain.EscortRequest
	if err := a.c.do(ctx, http.MethodPost, "/escorts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetActive returns (nil, nil) when no request is pending or assigned.
func (a *EscortsAPI) GetActive(ctx context.Context) (*domain.EscortRequest, error) {
	var out *domain.EscortRequest
	err := a.c.do(ctx, http.MethodGet, "/escorts/active", nil, &out)
	return out, err
}

func (a *EscortsAPI) Cancel(ctx context.Context, id uuid.UUID) error {
	return a.c.do(ctx, http.MethodPut, "/escorts/"+id.String()+"/cancel", nil, nil)
}

func (a *EscortsAPI) Assign(ctx context.Context, id uuid.UUID) error {
	return a.c.do(ctx, http.MethodPut, "/escorts/"+id.String()+"/assign", nil, nil)
}

type FriendWalkAPI struct{ c *Client }

func (a *FriendWalkAPI) Start(ctx context.Context, req domain.StartWalkRequest) (*domain.FriendWalk, error) {
	var out domain.FriendWalk
	if err := a.c.do(ctx, http.MethodPost, "/friend-walk", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetActive returns (nil, nil) when no walk is active.
func (a *FriendWalkAPI) GetActive(ctx context.Context) (*domain.FriendWalk, error) {
	var out *domain.FriendWalk
	err := a.c.do(ctx, http.MethodGet, "/friend-walk/active", nil, &out)
	return out, err
}

func (a *FriendWalkAPI) UpdateLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error {
	req := domain.UpdateWalkLocationRequest{Lat: lat, Lng: lng}
	return a.c.do(ctx, http.MethodPut, "/friend-walk/"+id.String()+"/update", req, nil)
}

func (a *FriendWalkAPI) Extend(ctx context.Context, id uuid.UUID, minutes int) (*domain.ExtendWalkResponse, error) {
	var out domain.ExtendWalkResponse
	path := "/friend-walk/" + id.String() + "/extend?minutes=" + strconv.Itoa(minutes)
	if err := a.c.do(ctx, http.MethodPut, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *FriendWalkAPI) Complete(ctx context.Context, id uuid.UUID) error {
	return a.c.do(ctx, http.MethodPut, "/friend-walk/"+id.String()+"/complete", nil, nil)
}

type AlertsAPI struct{ c *Client }

func (a *AlertsAPI) List(ctx context.Context) ([]domain.CampusAlert, error) {
	var out []domain.CampusAlert
	err := a.c.do(ctx, http.MethodGet, "/alerts", nil, &out)
	return out, err
}

func (a *AlertsAPI) Get(ctx context.Context, id uuid.UUID) (*domain.CampusAlert, error) {
	var out domain.CampusAlert
	if err := a.c.do(ctx, http.MethodGet, "/alerts/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type LocationsAPI struct{ c *Client }

// List returns campus locations; a nil type means all of them.
func (a *LocationsAPI) List(ctx context.Context, locType *domain.LocationType) ([]domain.CampusLocation, error) {
	path := "/locations"
	if locType != nil {
		path += "?" + url.Values{"location_type": {string(*locType)}}.Encode()
	}
	var out []domain.CampusLocation
	err := a.c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) Seed(ctx context.Context) (*domain.SeedResponse, error) {
	var out domain.SeedResponse
	if err := c.do(ctx, http.MethodPost, "/seed", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
