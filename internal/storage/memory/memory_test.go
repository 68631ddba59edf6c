package memory

import (
	"context"
	"testing"
	"time"

	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newUser(t *testing.T, s *Store, email string) domain.User {
	t.Helper()
	u := domain.User{FullName: "Test", Email: email, Phone: "902", PasswordHash: "x"}
	require.NoError(t, s.Users.Create(context.Background(), &u))
	return u
}

func TestUsers_EmailUniqueCaseInsensitive(t *testing.T) {
	s := New()
	newUser(t, s, "Jane@AcadiaU.ca")

	dup := domain.User{Email: "jane@acadiau.ca"}
	err := s.Users.Create(context.Background(), &dup)
	require.ErrorIs(t, err, e.ErrConflict)

	got, err := s.Users.GetByEmail(context.Background(), "JANE@acadiau.ca")
	require.NoError(t, err)
	require.Equal(t, "jane@acadiau.ca", got.Email)
}

func TestEscorts_OneActivePerUser(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := newUser(t, s, "a@acadiau.ca")

	first := domain.EscortRequest{UserID: u.ID, Status: domain.EscortPending}
	require.NoError(t, s.Escorts.Create(ctx, &first))

	second := domain.EscortRequest{UserID: u.ID, Status: domain.EscortPending}
	require.ErrorIs(t, s.Escorts.Create(ctx, &second), e.ErrConflict)

	_, err := s.Escorts.Assign(ctx, first.ID, domain.DefaultOfficerName, domain.EscortAssignedWait)
	require.NoError(t, err)

	_, err = s.Escorts.Assign(ctx, first.ID, domain.DefaultOfficerName, domain.EscortAssignedWait)
	require.ErrorIs(t, err, e.ErrNotFound)

	require.NoError(t, s.Escorts.Cancel(ctx, u.ID, first.ID))
	require.NoError(t, s.Escorts.Create(ctx, &second))
}

func TestEscorts_ListPendingBefore(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		u := newUser(t, s, uuid.NewString()+"@acadiau.ca")
		req := domain.EscortRequest{UserID: u.ID, Status: domain.EscortPending, CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, s.Escorts.Create(ctx, &req))
	}

	got, err := s.Escorts.ListPendingBefore(ctx, base.Add(time.Minute), 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.True(t, got[0].CreatedAt.Before(got[1].CreatedAt))
}

func TestWalks_ExtendRequiresEnd(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := newUser(t, s, "w@acadiau.ca")

	start := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)
	w := domain.FriendWalk{UserID: u.ID, StartTime: start, Status: domain.WalkActive}
	require.NoError(t, s.Walks.Create(ctx, &w))

	_, err := s.Walks.Extend(ctx, u.ID, w.ID, 15)
	require.ErrorIs(t, err, e.ErrNotFound)

	_, err = s.Walks.Complete(ctx, u.ID, w.ID)
	require.NoError(t, err)

	end := start.Add(15 * time.Minute)
	bounded := domain.FriendWalk{UserID: u.ID, StartTime: start, DurationMinutes: 15, EndTime: &end, Status: domain.WalkActive}
	require.NoError(t, s.Walks.Create(ctx, &bounded))

	got, err := s.Walks.Extend(ctx, u.ID, bounded.ID, 15)
	require.NoError(t, err)
	require.Equal(t, start.Add(30*time.Minute), *got.EndTime)
	require.Equal(t, 30, got.DurationMinutes)
}

func TestIncidents_ListPaginates(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		inc := domain.IncidentReport{IncidentType: "Theft", Description: "d", Status: domain.IncidentPending, CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, s.Incidents.Create(ctx, &inc))
	}

	page, total, err := s.Incidents.List(ctx, 2, 20)
	require.NoError(t, err)
	require.EqualValues(t, 25, total)
	require.Len(t, page, 5)
	require.Equal(t, base, page[len(page)-1].CreatedAt)

	empty, _, err := s.Incidents.List(ctx, 5, 20)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestCampus_SeedReplaces(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		require.NoError(t, s.Campus.Seed(ctx, domain.SeedAlerts(now), domain.SeedLocations()))
	}

	alerts, err := s.Campus.ListAlerts(ctx)
	require.NoError(t, err)
	require.Len(t, alerts, len(domain.SeedAlerts(now)))

	aed := domain.LocationAED
	locs, err := s.Campus.ListLocations(ctx, &aed)
	require.NoError(t, err)
	for _, l := range locs {
		require.Equal(t, domain.LocationAED, l.LocationType)
	}
}
