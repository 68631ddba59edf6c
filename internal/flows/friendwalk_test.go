package flows_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"acadiasafe/internal/domain"
	"acadiasafe/internal/flows"
	"acadiasafe/internal/forms"
)

func remaining(f *flows.FriendWalkFlow) (time.Duration, bool) {
	a, ok := f.State().(flows.WalkActive)
	return a.Remaining, ok
}

// activeWalk returns a bounded walk that ends left after clk's current time.
func activeWalk(clk clock.Clock, left time.Duration) *domain.FriendWalk {
	start := clk.Now().Add(left - 15*time.Minute)
	end := clk.Now().Add(left)
	return &domain.FriendWalk{
		ID:              uuid.New(),
		StartTime:       start,
		DurationMinutes: 15,
		EndTime:         &end,
		Status:          domain.WalkActive,
	}
}

func TestFriendWalk_StartNeedsContact(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	walks := &fakeWalks{now: clk.Now}
	f := flows.NewFriendWalkFlow(walks, &fakeContacts{}, flows.WithClock(clk))
	t.Cleanup(f.Close)

	require.NoError(t, f.Load(context.Background()))

	err := f.Start(context.Background())
	var ve forms.ValidationErrors
	require.ErrorAs(t, err, &ve)
	require.True(t, ve.Has("contacts"))
	require.IsType(t, flows.WalkSetup{}, f.State())
}

func TestFriendWalk_SetupAndAddContact(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	contacts := &fakeContacts{}
	f := flows.NewFriendWalkFlow(&fakeWalks{now: clk.Now}, contacts, flows.WithClock(clk))
	t.Cleanup(f.Close)

	require.NoError(t, f.Load(context.Background()))
	require.Equal(t, flows.DefaultWalkMinutes, f.State().(flows.WalkSetup).Duration)

	require.NoError(t, f.OpenAddContact())
	require.IsType(t, flows.WalkAddContact{}, f.State())

	err := f.AddContact(context.Background(), forms.Contact{Name: "Sam"})
	var ve forms.ValidationErrors
	require.ErrorAs(t, err, &ve)
	require.True(t, ve.Has("phone"))

	require.NoError(t, f.AddContact(context.Background(), forms.Contact{Name: "Sam", Phone: "902-555-0100"}))
	setup, ok := f.State().(flows.WalkSetup)
	require.True(t, ok)
	require.Len(t, setup.Contacts, 1)

	id := setup.Contacts[0].ID
	require.NoError(t, f.ToggleContact(id))
	require.Equal(t, []uuid.UUID{id}, f.State().(flows.WalkSetup).Selected)
	require.NoError(t, f.ToggleContact(id))
	require.Empty(t, f.State().(flows.WalkSetup).Selected)

	require.Error(t, f.ToggleContact(uuid.New()))
	require.Error(t, f.SetDuration(45))
	require.NoError(t, f.SetDuration(0))
	require.Equal(t, 0, f.State().(flows.WalkSetup).Duration)

	require.NoError(t, f.OpenAddContact())
	require.NoError(t, f.CancelAddContact())
	require.IsType(t, flows.WalkSetup{}, f.State())
}

func TestFriendWalk_ResumeActive(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	walks := &fakeWalks{now: clk.Now, active: activeWalk(clk, 10*time.Minute)}
	f := flows.NewFriendWalkFlow(walks, &fakeContacts{}, flows.WithClock(clk))
	t.Cleanup(f.Close)

	require.NoError(t, f.Load(context.Background()))
	rem, ok := remaining(f)
	require.True(t, ok)
	require.Equal(t, 10*time.Minute, rem)
}

func TestFriendWalk_ResumedWalkEndsInUsableSetup(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	contact := domain.TrustedContact{ID: uuid.New(), Name: "Sam", Phone: "902"}
	walks := &fakeWalks{now: clk.Now, active: activeWalk(clk, 10*time.Minute)}
	f := flows.NewFriendWalkFlow(walks, &fakeContacts{list: []domain.TrustedContact{contact}}, flows.WithClock(clk))
	t.Cleanup(f.Close)

	require.NoError(t, f.Load(context.Background()))
	require.IsType(t, flows.WalkActive{}, f.State())

	require.NoError(t, f.Complete(context.Background()))
	setup, ok := f.State().(flows.WalkSetup)
	require.True(t, ok)
	require.Len(t, setup.Contacts, 1)

	require.NoError(t, f.ToggleContact(contact.ID))
	require.NoError(t, f.Start(context.Background()))
	require.IsType(t, flows.WalkActive{}, f.State())
}

func TestFriendWalk_RemainingCountsDownToZero(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	walks := &fakeWalks{now: clk.Now, active: activeWalk(clk, 3*time.Second)}
	notices := &noticeLog{}
	f := flows.NewFriendWalkFlow(walks, &fakeContacts{}, flows.WithClock(clk), flows.WithNotifier(notices))
	t.Cleanup(f.Close)

	require.NoError(t, f.Load(context.Background()))
	prev, _ := remaining(f)
	require.Equal(t, 3*time.Second, prev)

	for i := 0; i < 2; i++ {
		clk.Add(time.Second)
		want := prev - time.Second
		require.Eventually(t, func() bool {
			rem, _ := remaining(f)
			return rem == want
		}, waitFor, pollEvery)
		rem, _ := remaining(f)
		require.Less(t, rem, prev)
		prev = rem
	}

	clk.Add(time.Second)
	require.Eventually(t, func() bool {
		_, back := f.State().(flows.WalkSetup)
		return back
	}, waitFor, pollEvery)

	completes, _ := walks.counts()
	require.Equal(t, 1, completes)

	clk.Add(5 * time.Second)
	completes, _ = walks.counts()
	require.Equal(t, 1, completes)
}

func TestFriendWalk_AutoCompleteFailureTriedOnce(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	walks := &fakeWalks{now: clk.Now, active: activeWalk(clk, time.Second), completeErr: errDown}
	notices := &noticeLog{}
	f := flows.NewFriendWalkFlow(walks, &fakeContacts{}, flows.WithClock(clk), flows.WithNotifier(notices))
	t.Cleanup(f.Close)

	require.NoError(t, f.Load(context.Background()))

	clk.Add(time.Second)
	require.Eventually(t, func() bool { return notices.errors() == 1 }, waitFor, pollEvery)

	for i := 0; i < 3; i++ {
		clk.Add(time.Second)
		time.Sleep(10 * time.Millisecond)
		rem, ok := remaining(f)
		require.True(t, ok)
		require.Zero(t, rem)
	}
	completes, _ := walks.counts()
	require.Equal(t, 1, completes)

	// a manual attempt is still possible and failure keeps the walk
	require.ErrorIs(t, f.Complete(context.Background()), errDown)
	require.IsType(t, flows.WalkActive{}, f.State())
}

func TestFriendWalk_StartExtendComplete(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	contact := domain.TrustedContact{ID: uuid.New(), Name: "Sam", Phone: "902"}
	walks := &fakeWalks{now: clk.Now}
	f := flows.NewFriendWalkFlow(walks, &fakeContacts{list: []domain.TrustedContact{contact}},
		flows.WithClock(clk), flows.WithLocationInterval(10*time.Second))
	t.Cleanup(f.Close)

	require.NoError(t, f.Load(context.Background()))
	require.NoError(t, f.ToggleContact(contact.ID))
	require.NoError(t, f.SetDuration(15))
	require.NoError(t, f.Start(context.Background()))

	rem, ok := remaining(f)
	require.True(t, ok)
	require.Equal(t, 15*time.Minute, rem)

	require.NoError(t, f.Extend(context.Background()))
	a := f.State().(flows.WalkActive)
	require.Equal(t, a.Walk.StartTime.Add(30*time.Minute), *a.Walk.EndTime)
	require.Equal(t, 30*time.Minute, a.Remaining)

	clk.Add(10 * time.Second)
	require.Eventually(t, func() bool {
		_, updates := walks.counts()
		return updates >= 1
	}, waitFor, pollEvery)

	require.NoError(t, f.Complete(context.Background()))
	require.IsType(t, flows.WalkSetup{}, f.State())
	require.ErrorIs(t, f.Complete(context.Background()), flows.ErrInvalidTransition)
}
