// Package memory is a process-local storage backend with the same contract
// as the Postgres repositories: not-found and uniqueness failures surface as
// e.ErrNotFound and e.ErrConflict. It backs STORAGE_DRIVER=memory and the
// end-to-end tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"

	"github.com/google/uuid"
)

type Store struct {
	mu        sync.RWMutex
	users     map[uuid.UUID]domain.User
	contacts  map[uuid.UUID]domain.TrustedContact
	sos       map[uuid.UUID]domain.SOSAlert
	incidents map[uuid.UUID]domain.IncidentReport
	escorts   map[uuid.UUID]domain.EscortRequest
	walks     map[uuid.UUID]domain.FriendWalk
	alerts    map[uuid.UUID]domain.CampusAlert
	locations map[uuid.UUID]domain.CampusLocation

	Users     *UserRepo
	Contacts  *ContactRepo
	SOS       *SOSRepo
	Incidents *IncidentRepo
	Escorts   *EscortRepo
	Walks     *WalkRepo
	Campus    *CampusRepo
}

func New() *Store {
	s := &Store{
		users:     make(map[uuid.UUID]domain.User),
		contacts:  make(map[uuid.UUID]domain.TrustedContact),
		sos:       make(map[uuid.UUID]domain.SOSAlert),
		incidents: make(map[uuid.UUID]domain.IncidentReport),
		escorts:   make(map[uuid.UUID]domain.EscortRequest),
		walks:     make(map[uuid.UUID]domain.FriendWalk),
		alerts:    make(map[uuid.UUID]domain.CampusAlert),
		locations: make(map[uuid.UUID]domain.CampusLocation),
	}
	s.Users = &UserRepo{s}
	s.Contacts = &ContactRepo{s}
	s.SOS = &SOSRepo{s}
	s.Incidents = &IncidentRepo{s}
	s.Escorts = &EscortRepo{s}
	s.Walks = &WalkRepo{s}
	s.Campus = &CampusRepo{s}
	return s
}

func (s *Store) Ping(context.Context) error { return nil }

func notFound(op string) error {
	return fmt.Errorf("%s: %w", op, e.ErrNotFound)
}

func conflict(op string) error {
	return fmt.Errorf("%s: %w: %w", op, e.ErrConflict, e.ErrUniqueViolation)
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now().UTC()
	}
	return t.UTC()
}

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *domain.User) error {
	const op = "memory.User.Create"

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u.Email = strings.ToLower(u.Email)
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return conflict(op)
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.CreatedAt = stamp(u.CreatedAt)
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	email = strings.ToLower(email)
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, notFound("memory.User.GetByEmail")
}

func (r *UserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound("memory.User.GetByID")
	}
	return &u, nil
}

func (r *UserRepo) Update(_ context.Context, id uuid.UUID, req domain.UpdateProfileRequest) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, notFound("memory.User.Update")
	}
	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.ProfilePhoto != nil {
		u.ProfilePhoto = req.ProfilePhoto
	}
	if req.EmergencyContactName != nil {
		u.EmergencyContactName = req.EmergencyContactName
	}
	if req.EmergencyContactPhone != nil {
		u.EmergencyContactPhone = req.EmergencyContactPhone
	}
	r.s.users[id] = u
	return &u, nil
}

type ContactRepo struct{ s *Store }

func (r *ContactRepo) List(_ context.Context, userID uuid.UUID) ([]domain.TrustedContact, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.TrustedContact, 0)
	for _, c := range r.s.contacts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *ContactRepo) Create(_ context.Context, c *domain.TrustedContact) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[c.UserID]; !ok {
		return fmt.Errorf("memory.Contact.Create: %w", e.ErrInvalidInput)
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = stamp(c.CreatedAt)
	r.s.contacts[c.ID] = *c
	return nil
}

func (r *ContactRepo) Delete(_ context.Context, userID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.contacts[id]
	if !ok || c.UserID != userID {
		return notFound("memory.Contact.Delete")
	}
	delete(r.s.contacts, id)
	return nil
}

type SOSRepo struct{ s *Store }

func (r *SOSRepo) Create(_ context.Context, a *domain.SOSAlert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = stamp(a.CreatedAt)
	r.s.sos[a.ID] = *a
	return nil
}

func (r *SOSRepo) Cancel(_ context.Context, userID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.sos[id]
	if !ok || a.UserID != userID || a.Status != domain.SOSActive {
		return notFound("memory.SOS.Cancel")
	}
	a.Status = domain.SOSCancelled
	r.s.sos[id] = a
	return nil
}

func (r *SOSRepo) GetActive(_ context.Context, userID uuid.UUID) (*domain.SOSAlert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var latest *domain.SOSAlert
	for _, a := range r.s.sos {
		if a.UserID != userID || a.Status != domain.SOSActive {
			continue
		}
		if latest == nil || a.CreatedAt.After(latest.CreatedAt) {
			a := a
			latest = &a
		}
	}
	if latest == nil {
		return nil, notFound("memory.SOS.GetActive")
	}
	return latest, nil
}

func (r *SOSRepo) ListActive(_ context.Context) ([]domain.SOSAlert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.SOSAlert, 0)
	for _, a := range r.s.sos {
		if a.Status == domain.SOSActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return capped(out, 100), nil
}

func (r *SOSRepo) Resolve(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.sos[id]
	if !ok || a.Status != domain.SOSActive {
		return notFound("memory.SOS.Resolve")
	}
	a.Status = domain.SOSResolved
	r.s.sos[id] = a
	return nil
}

type IncidentRepo struct{ s *Store }

func (r *IncidentRepo) Create(_ context.Context, inc *domain.IncidentReport) error {
	if len(inc.Photos) > domain.MaxIncidentPhotos {
		return fmt.Errorf("memory.Incident.Create: %w", e.ErrInvalidInput)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if inc.ID == uuid.Nil {
		inc.ID = uuid.New()
	}
	inc.CreatedAt = stamp(inc.CreatedAt)
	r.s.incidents[inc.ID] = *inc
	return nil
}

func (r *IncidentRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.IncidentReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.IncidentReport, 0)
	for _, inc := range r.s.incidents {
		if inc.UserID != nil && *inc.UserID == userID {
			out = append(out, inc)
		}
	}
	sortIncidents(out)
	return capped(out, 100), nil
}

func (r *IncidentRepo) Get(_ context.Context, id uuid.UUID) (*domain.IncidentReport, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	inc, ok := r.s.incidents[id]
	if !ok {
		return nil, notFound("memory.Incident.Get")
	}
	return &inc, nil
}

func (r *IncidentRepo) List(_ context.Context, page, limit int) ([]domain.IncidentReport, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page < 1 {
		page = 1
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]domain.IncidentReport, 0, len(r.s.incidents))
	for _, inc := range r.s.incidents {
		all = append(all, inc)
	}
	sortIncidents(all)

	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []domain.IncidentReport{}, total, nil
	}
	end := min(start+limit, len(all))
	return all[start:end], total, nil
}

func (r *IncidentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.IncidentStatus) (*domain.IncidentReport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	inc, ok := r.s.incidents[id]
	if !ok {
		return nil, notFound("memory.Incident.UpdateStatus")
	}
	inc.Status = status
	r.s.incidents[id] = inc
	return &inc, nil
}

func sortIncidents(list []domain.IncidentReport) {
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}

type EscortRepo struct{ s *Store }

func (r *EscortRepo) Create(_ context.Context, req *domain.EscortRequest) error {
	const op = "memory.Escort.Create"

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.escorts {
		if existing.UserID == req.UserID && existing.Active() {
			return conflict(op)
		}
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	req.CreatedAt = stamp(req.CreatedAt)
	r.s.escorts[req.ID] = *req
	return nil
}

func (r *EscortRepo) GetActive(_ context.Context, userID uuid.UUID) (*domain.EscortRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, req := range r.s.escorts {
		if req.UserID == userID && req.Active() {
			return &req, nil
		}
	}
	return nil, notFound("memory.Escort.GetActive")
}

func (r *EscortRepo) Cancel(_ context.Context, userID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.escorts[id]
	if !ok || req.UserID != userID || !req.Active() {
		return notFound("memory.Escort.Cancel")
	}
	req.Status = domain.EscortCancelled
	r.s.escorts[id] = req
	return nil
}

func (r *EscortRepo) Assign(_ context.Context, id uuid.UUID, officer string, wait int) (*domain.EscortRequest, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	req, ok := r.s.escorts[id]
	if !ok || req.Status != domain.EscortPending {
		return nil, notFound("memory.Escort.Assign")
	}
	req.Status = domain.EscortAssigned
	req.OfficerName = &officer
	req.EstimatedWait = wait
	r.s.escorts[id] = req
	return &req, nil
}

func (r *EscortRepo) ListPendingBefore(_ context.Context, before time.Time, limit int) ([]domain.EscortRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.EscortRequest, 0)
	for _, req := range r.s.escorts {
		if req.Status == domain.EscortPending && !req.CreatedAt.After(before) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return capped(out, limit), nil
}

type WalkRepo struct{ s *Store }

func (r *WalkRepo) Create(_ context.Context, w *domain.FriendWalk) error {
	const op = "memory.Walk.Create"

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.walks {
		if existing.UserID == w.UserID && existing.Status == domain.WalkActive {
			return conflict(op)
		}
	}
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	w.StartTime = stamp(w.StartTime)
	if w.EndTime != nil {
		end := w.EndTime.UTC()
		w.EndTime = &end
	}
	w.ContactIDs = append([]uuid.UUID(nil), w.ContactIDs...)
	r.s.walks[w.ID] = *w
	return nil
}

func (r *WalkRepo) GetActive(_ context.Context, userID uuid.UUID) (*domain.FriendWalk, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, w := range r.s.walks {
		if w.UserID == userID && w.Status == domain.WalkActive {
			return &w, nil
		}
	}
	return nil, notFound("memory.Walk.GetActive")
}

func (r *WalkRepo) Get(_ context.Context, userID, id uuid.UUID) (*domain.FriendWalk, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.walks[id]
	if !ok || w.UserID != userID {
		return nil, notFound("memory.Walk.Get")
	}
	return &w, nil
}

func (r *WalkRepo) UpdateLocation(_ context.Context, userID, id uuid.UUID, lat, lng float64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.walks[id]
	if !ok || w.UserID != userID || w.Status != domain.WalkActive {
		return notFound("memory.Walk.UpdateLocation")
	}
	w.CurrentLat, w.CurrentLng = lat, lng
	r.s.walks[id] = w
	return nil
}

func (r *WalkRepo) Extend(_ context.Context, userID, id uuid.UUID, minutes int) (*domain.FriendWalk, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.walks[id]
	if !ok || w.UserID != userID || w.Status != domain.WalkActive || w.EndTime == nil {
		return nil, notFound("memory.Walk.Extend")
	}
	end := w.EndTime.Add(time.Duration(minutes) * time.Minute)
	w.EndTime = &end
	w.DurationMinutes += minutes
	r.s.walks[id] = w
	return &w, nil
}

func (r *WalkRepo) Complete(_ context.Context, userID, id uuid.UUID) (*domain.FriendWalk, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	w, ok := r.s.walks[id]
	if !ok || w.UserID != userID || w.Status != domain.WalkActive {
		return nil, notFound("memory.Walk.Complete")
	}
	w.Status = domain.WalkCompleted
	r.s.walks[id] = w
	return &w, nil
}

type CampusRepo struct{ s *Store }

func (r *CampusRepo) ListAlerts(_ context.Context) ([]domain.CampusAlert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.CampusAlert, 0, len(r.s.alerts))
	for _, a := range r.s.alerts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return capped(out, 50), nil
}

func (r *CampusRepo) GetAlert(_ context.Context, id uuid.UUID) (*domain.CampusAlert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.alerts[id]
	if !ok {
		return nil, notFound("memory.Campus.GetAlert")
	}
	return &a, nil
}

func (r *CampusRepo) CreateAlert(_ context.Context, a *domain.CampusAlert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = stamp(a.CreatedAt)
	r.s.alerts[a.ID] = *a
	return nil
}

func (r *CampusRepo) ListLocations(_ context.Context, locType *domain.LocationType) ([]domain.CampusLocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.CampusLocation, 0)
	for _, l := range r.s.locations {
		if locType == nil || l.LocationType == *locType {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return capped(out, 100), nil
}

// Seed replaces both campus tables wholesale.
func (r *CampusRepo) Seed(_ context.Context, alerts []domain.CampusAlert, locations []domain.CampusLocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.alerts = make(map[uuid.UUID]domain.CampusAlert, len(alerts))
	for _, a := range alerts {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		a.CreatedAt = stamp(a.CreatedAt)
		r.s.alerts[a.ID] = a
	}
	r.s.locations = make(map[uuid.UUID]domain.CampusLocation, len(locations))
	for _, l := range locations {
		if l.ID == uuid.Nil {
			l.ID = uuid.New()
		}
		r.s.locations[l.ID] = l
	}
	return nil
}

func capped[T any](list []T, n int) []T {
	if n > 0 && len(list) > n {
		return list[:n]
	}
	return list
}
