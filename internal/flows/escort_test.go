package flows_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"acadiasafe/internal/client"
	"acadiasafe/internal/domain"
	"acadiasafe/internal/flows"
	"acadiasafe/internal/forms"
)

func isAssigned(f *flows.EscortFlow) func() bool {
	return func() bool {
		_, ok := f.State().(flows.EscortAssigned)
		return ok
	}
}

func TestEscort_ResumeMatchesServer(t *testing.T) {
	t.Parallel()

	officer := domain.DefaultOfficerName
	tests := []struct {
		name   string
		active *domain.EscortRequest
		want   flows.EscortState
	}{
		{name: "nothing active", active: nil, want: flows.EscortForm{}},
		{name: "pending", active: &domain.EscortRequest{ID: uuid.New(), Status: domain.EscortPending}, want: flows.EscortWaiting{}},
		{name: "assigned", active: &domain.EscortRequest{ID: uuid.New(), Status: domain.EscortAssigned, OfficerName: &officer}, want: flows.EscortAssigned{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := &fakeEscorts{active: tt.active}
			f := flows.NewEscortFlow(api, flows.PollStrategy{Every: time.Second}, flows.WithClock(clock.NewMock()))
			t.Cleanup(f.Close)

			require.NoError(t, f.Resume(context.Background()))
			require.IsType(t, tt.want, f.State())
		})
	}
}

func TestEscort_SubmitRequiresDestination(t *testing.T) {
	t.Parallel()

	api := &fakeEscorts{}
	f := flows.NewEscortFlow(api, nil, flows.WithClock(clock.NewMock()))
	t.Cleanup(f.Close)

	err := f.Submit(context.Background(), forms.Escort{Destination: "   "})
	var ve forms.ValidationErrors
	require.ErrorAs(t, err, &ve)
	require.True(t, ve.Has("destination"))
	require.Zero(t, api.creates)
	require.IsType(t, flows.EscortForm{}, f.State())
}

func TestEscort_PollFollowsServer(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	api := &fakeEscorts{}
	notices := &noticeLog{}
	f := flows.NewEscortFlow(api, flows.PollStrategy{Every: 3 * time.Second}, flows.WithClock(clk), flows.WithNotifier(notices))
	t.Cleanup(f.Close)

	require.NoError(t, f.Submit(context.Background(), forms.Escort{Destination: "Vaughan Library"}))
	w, ok := f.State().(flows.EscortWaiting)
	require.True(t, ok)
	require.Equal(t, domain.DefaultPickupName, *w.Request.PickupName)
	require.Equal(t, flows.EscortDestination.Lat, w.Request.DestinationLat)

	// still pending on the first poll
	clk.Add(3 * time.Second)
	time.Sleep(20 * time.Millisecond)
	require.IsType(t, flows.EscortWaiting{}, f.State())

	api.dispatch()
	clk.Add(3 * time.Second)
	require.Eventually(t, isAssigned(f), waitFor, pollEvery)

	got := f.State().(flows.EscortAssigned)
	require.Equal(t, domain.EscortAssignedWait, got.Request.EstimatedWait)
	require.Zero(t, api.assigns)
}

func TestEscort_SimulatedAssignment(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	api := &fakeEscorts{}
	f := flows.NewEscortFlow(api, flows.SimulatedAssignStrategy{Delay: 5 * time.Second}, flows.WithClock(clk))
	t.Cleanup(f.Close)

	require.NoError(t, f.Submit(context.Background(), forms.Escort{Destination: "Residence"}))

	clk.Add(4 * time.Second)
	require.IsType(t, flows.EscortWaiting{}, f.State())

	clk.Add(time.Second)
	require.Eventually(t, isAssigned(f), waitFor, pollEvery)
	require.Equal(t, 1, api.assigns)
}

func TestEscort_AssignFailureNotifiesOnce(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	api := &fakeEscorts{assignErr: errDown}
	notices := &noticeLog{}
	f := flows.NewEscortFlow(api, flows.SimulatedAssignStrategy{Delay: 5 * time.Second}, flows.WithClock(clk), flows.WithNotifier(notices))
	t.Cleanup(f.Close)

	require.NoError(t, f.Submit(context.Background(), forms.Escort{Destination: "Residence"}))

	for i := 1; i <= 3; i++ {
		clk.Add(5 * time.Second)
		want := i
		require.Eventually(t, func() bool { return api.assignCount() == want }, waitFor, pollEvery)
	}
	require.Eventually(t, func() bool { return notices.errors() == 1 }, waitFor, pollEvery)
	require.IsType(t, flows.EscortWaiting{}, f.State())

	// a request that is no longer pending is not a failure
	api.mu.Lock()
	api.assignErr = &client.APIError{Status: http.StatusNotFound, Detail: "Escort request not pending"}
	api.mu.Unlock()
	api.dispatch()

	clk.Add(5 * time.Second)
	require.Eventually(t, isAssigned(f), waitFor, pollEvery)
	require.Equal(t, 1, notices.errors())
}

func TestEscort_RequestEndedElsewhere(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	api := &fakeEscorts{}
	notices := &noticeLog{}
	f := flows.NewEscortFlow(api, flows.PollStrategy{Every: time.Second}, flows.WithClock(clk), flows.WithNotifier(notices))
	t.Cleanup(f.Close)

	require.NoError(t, f.Submit(context.Background(), forms.Escort{Destination: "Residence"}))
	require.NoError(t, api.Cancel(context.Background(), uuid.Nil))

	clk.Add(time.Second)
	require.Eventually(t, func() bool {
		_, back := f.State().(flows.EscortForm)
		return back
	}, waitFor, pollEvery)
}

func TestEscort_CancelFailureKeepsState(t *testing.T) {
	t.Parallel()

	officer := domain.DefaultOfficerName
	api := &fakeEscorts{
		active:    &domain.EscortRequest{ID: uuid.New(), Status: domain.EscortAssigned, OfficerName: &officer},
		cancelErr: errDown,
	}
	f := flows.NewEscortFlow(api, nil, flows.WithClock(clock.NewMock()))
	t.Cleanup(f.Close)

	require.NoError(t, f.Resume(context.Background()))
	require.ErrorIs(t, f.Cancel(context.Background()), errDown)
	require.IsType(t, flows.EscortAssigned{}, f.State())

	api.cancelErr = nil
	require.NoError(t, f.Cancel(context.Background()))
	require.IsType(t, flows.EscortForm{}, f.State())
	require.ErrorIs(t, f.Cancel(context.Background()), flows.ErrInvalidTransition)
}
