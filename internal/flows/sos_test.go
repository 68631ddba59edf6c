package flows_test

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"acadiasafe/internal/domain"
	"acadiasafe/internal/flows"
	"acadiasafe/pkg/e"
)

// runCountdown advances one tick at a time until the countdown has run out.
func runCountdown(t *testing.T, clk *clock.Mock, f *flows.SOSFlow) {
	t.Helper()
	for i := 0; i < flows.SOSCountdownSeconds; i++ {
		clk.Add(time.Second)
		want := flows.SOSCountdownSeconds - i - 1
		require.Eventually(t, func() bool {
			if _, counting := f.State().(flows.SOSCountdown); !counting {
				return true
			}
			return f.Remaining() == want
		}, waitFor, pollEvery)
	}
}

func TestSOS_CountdownSendsOnce(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	api := &fakeSOS{}
	f := flows.NewSOSFlow(api, flows.WithClock(clk), flows.WithLocator(noLocation))
	t.Cleanup(f.Close)

	require.NoError(t, f.Select(domain.SOSMedical))
	require.Equal(t, flows.SOSCountdownSeconds, f.Remaining())

	for want := 2; want >= 1; want-- {
		clk.Add(time.Second)
		require.Eventually(t, func() bool { return f.Remaining() == want }, waitFor, pollEvery)
		require.Zero(t, api.createCount())
	}

	clk.Add(time.Second)
	require.Eventually(t, func() bool {
		_, sent := f.State().(flows.SOSSent)
		return sent
	}, waitFor, pollEvery)

	clk.Add(5 * time.Second)
	require.Equal(t, 1, api.createCount())

	req := api.creates[0]
	require.Equal(t, flows.FallbackPosition.Lat, req.Lat)
	require.Equal(t, flows.FallbackPosition.Lng, req.Lng)
	require.Equal(t, domain.SOSMedical, *req.AlertType)
}

func TestSOS_CancelCountdownAtTwo(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	api := &fakeSOS{}
	f := flows.NewSOSFlow(api, flows.WithClock(clk))
	t.Cleanup(f.Close)

	require.NoError(t, f.SendNow())
	clk.Add(time.Second)
	require.Eventually(t, func() bool { return f.Remaining() == 2 }, waitFor, pollEvery)

	require.NoError(t, f.CancelCountdown())
	require.IsType(t, flows.SOSSelecting{}, f.State())
	require.Equal(t, flows.SOSCountdownSeconds, f.Remaining())

	clk.Add(10 * time.Second)
	require.Zero(t, api.createCount())

	require.ErrorIs(t, f.CancelCountdown(), flows.ErrInvalidTransition)
}

func TestSOS_CreateFailureReturnsToSelection(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	api := &fakeSOS{err: errDown}
	notices := &noticeLog{}
	f := flows.NewSOSFlow(api, flows.WithClock(clk), flows.WithNotifier(notices))
	t.Cleanup(f.Close)

	require.NoError(t, f.SendNow())
	runCountdown(t, clk, f)

	require.Eventually(t, func() bool { return notices.errors() == 1 }, waitFor, pollEvery)
	require.IsType(t, flows.SOSSelecting{}, f.State())
	require.Equal(t, 1, api.createCount())

	// no automatic retry
	clk.Add(10 * time.Second)
	require.Equal(t, 1, api.createCount())
	require.NoError(t, f.SendNow())
}

func TestSOS_RejectsUnknownCategory(t *testing.T) {
	t.Parallel()

	f := flows.NewSOSFlow(&fakeSOS{}, flows.WithClock(clock.NewMock()))
	t.Cleanup(f.Close)

	err := f.Select("fire")
	require.ErrorIs(t, err, e.ErrInvalidInput)
	require.IsType(t, flows.SOSSelecting{}, f.State())
}

func TestSOS_CancelSentClosesFlow(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	api := &fakeSOS{}
	f := flows.NewSOSFlow(api, flows.WithClock(clk))

	require.ErrorIs(t, f.Cancel(context.Background()), flows.ErrInvalidTransition)

	require.NoError(t, f.SendNow())
	runCountdown(t, clk, f)
	require.Eventually(t, func() bool {
		_, sent := f.State().(flows.SOSSent)
		return sent
	}, waitFor, pollEvery)

	require.NoError(t, f.Cancel(context.Background()))
	require.Equal(t, 1, api.cancels)
	require.ErrorIs(t, f.SendNow(), flows.ErrClosed)
	require.Equal(t, domain.SecurityPhone, f.SecurityPhone())
}
