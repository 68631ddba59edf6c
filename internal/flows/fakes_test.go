package flows_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"acadiasafe/internal/domain"
	"acadiasafe/internal/flows"
	"acadiasafe/internal/geo"
)

const waitFor = 2 * time.Second
const pollEvery = 5 * time.Millisecond

var errDown = errors.New("connection refused")

var noLocation = flows.LocatorFunc(func(context.Context) (geo.Point, error) {
	return geo.Point{}, errors.New("location unavailable")
})

type noticeLog struct {
	mu      sync.Mutex
	notices []flows.Notice
}

func (n *noticeLog) Notify(x flows.Notice) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, x)
}

func (n *noticeLog) errors() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	c := 0
	for _, x := range n.notices {
		if x.Level == flows.NoticeError {
			c++
		}
	}
	return c
}

type fakeSOS struct {
	mu      sync.Mutex
	creates []domain.CreateSOSRequest
	cancels int
	err     error
}

func (f *fakeSOS) Create(_ context.Context, req domain.CreateSOSRequest) (*domain.SOSAlert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates = append(f.creates, req)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.SOSAlert{ID: uuid.New(), Lat: req.Lat, Lng: req.Lng, AlertType: req.AlertType, Status: domain.SOSActive}, nil
}

func (f *fakeSOS) Cancel(context.Context, uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++
	return nil
}

func (f *fakeSOS) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.creates)
}

type fakeEscorts struct {
	mu        sync.Mutex
	active    *domain.EscortRequest
	creates   int
	assigns   int
	assignErr error
	cancelErr error
}

func (f *fakeEscorts) Create(_ context.Context, req domain.CreateEscortRequest) (*domain.EscortRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.active = &domain.EscortRequest{
		ID:              uuid.New(),
		PickupLat:       req.PickupLat,
		PickupLng:       req.PickupLng,
		PickupName:      req.PickupName,
		DestinationLat:  req.DestinationLat,
		DestinationLng:  req.DestinationLng,
		DestinationName: req.DestinationName,
		Status:          domain.EscortPending,
		EstimatedWait:   domain.EscortInitialWait,
	}
	out := *f.active
	return &out, nil
}

func (f *fakeEscorts) GetActive(context.Context) (*domain.EscortRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active == nil {
		return nil, nil
	}
	out := *f.active
	return &out, nil
}

func (f *fakeEscorts) Cancel(context.Context, uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.active = nil
	return nil
}

func (f *fakeEscorts) Assign(context.Context, uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assigns++
	if f.assignErr != nil {
		return f.assignErr
	}
	f.assignLocked()
	return nil
}

func (f *fakeEscorts) assignCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.assigns
}

// assignLocked plays the server dispatcher.
func (f *fakeEscorts) assignLocked() {
	if f.active == nil || f.active.Status != domain.EscortPending {
		return
	}
	name := domain.DefaultOfficerName
	f.active.Status = domain.EscortAssigned
	f.active.OfficerName = &name
	f.active.EstimatedWait = domain.EscortAssignedWait
}

func (f *fakeEscorts) dispatch() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assignLocked()
}

type fakeWalks struct {
	mu          sync.Mutex
	active      *domain.FriendWalk
	now         func() time.Time
	completes   int
	completeErr error
	updates     int
}

func (f *fakeWalks) Start(_ context.Context, req domain.StartWalkRequest) (*domain.FriendWalk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	start := f.now()
	w := domain.FriendWalk{
		ID:              uuid.New(),
		ContactIDs:      req.ContactIDs,
		StartTime:       start,
		DurationMinutes: req.DurationMinutes,
		CurrentLat:      req.Lat,
		CurrentLng:      req.Lng,
		Status:          domain.WalkActive,
	}
	if req.DurationMinutes > 0 {
		end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)
		w.EndTime = &end
	}
	f.active = &w
	out := w
	return &out, nil
}

func (f *fakeWalks) GetActive(context.Context) (*domain.FriendWalk, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.active == nil {
		return nil, nil
	}
	out := *f.active
	return &out, nil
}

func (f *fakeWalks) UpdateLocation(context.Context, uuid.UUID, float64, float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	return nil
}

func (f *fakeWalks) Extend(_ context.Context, _ uuid.UUID, minutes int) (*domain.ExtendWalkResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	end := f.active.EndTime.Add(time.Duration(minutes) * time.Minute)
	f.active.EndTime = &end
	f.active.DurationMinutes += minutes
	return &domain.ExtendWalkResponse{Message: "Walk extended", NewEndTime: end}, nil
}

func (f *fakeWalks) Complete(context.Context, uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.completes++
	if f.completeErr != nil {
		return f.completeErr
	}
	f.active = nil
	return nil
}

func (f *fakeWalks) counts() (completes, updates int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.completes, f.updates
}

type fakeContacts struct {
	mu   sync.Mutex
	list []domain.TrustedContact
}

func (f *fakeContacts) List(context.Context) ([]domain.TrustedContact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.TrustedContact(nil), f.list...), nil
}

func (f *fakeContacts) Add(_ context.Context, req domain.CreateContactRequest) (*domain.TrustedContact, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := domain.TrustedContact{ID: uuid.New(), Name: req.Name, Phone: req.Phone, Relationship: req.Relationship}
	f.list = append(f.list, c)
	return &c, nil
}

type fakeIncidents struct {
	mu   sync.Mutex
	reqs []domain.CreateIncidentRequest
}

func (f *fakeIncidents) Create(_ context.Context, req domain.CreateIncidentRequest) (*domain.IncidentReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	return &domain.IncidentReport{
		ID:           uuid.MustParse("3fa85f64-5717-4562-b3fc-2c963f66afa6"),
		IncidentType: req.IncidentType,
		Description:  req.Description,
		Photos:       req.Photos,
		Status:       domain.IncidentPending,
	}, nil
}
