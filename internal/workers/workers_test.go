package workers_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"acadiasafe/internal/domain"
	"acadiasafe/internal/workers"
	"acadiasafe/pkg/e"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type chanQueue struct {
	ch chan domain.Notification
}

func (q *chanQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.Notification, error) {
	select {
	case n := <-q.ch:
		return n, nil
	case <-time.After(timeout):
		return domain.Notification{}, e.ErrQueueEmpty
	case <-ctx.Done():
		return domain.Notification{}, ctx.Err()
	}
}

type deliveries struct {
	mu  sync.Mutex
	got map[string][]bool
}

func (d *deliveries) NotificationDelivered(kind string, ok bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.got == nil {
		d.got = map[string][]bool{}
	}
	d.got[kind] = append(d.got[kind], ok)
}

func (d *deliveries) results(kind string) []bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]bool(nil), d.got[kind]...)
}

func TestNotifier_Deliver_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		var n domain.Notification
		require.NoError(t, json.NewDecoder(r.Body).Decode(&n))
		require.Equal(t, domain.NotifyWalkStarted, n.Kind)
		require.Equal(t, string(domain.NotifyWalkStarted), r.Header.Get("X-Acadia-Event"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := workers.NewNotifier(testLogger(), srv.URL, nil, nil, workers.WithInitialInterval(time.Millisecond))
	err := n.Deliver(context.Background(), domain.Notification{Kind: domain.NotifyWalkStarted, SubjectID: uuid.New()})

	require.NoError(t, err)
	require.EqualValues(t, 3, calls.Load())
}

func TestNotifier_Deliver_GivesUpAfterThreeAttempts(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := workers.NewNotifier(testLogger(), srv.URL, nil, nil, workers.WithInitialInterval(time.Millisecond))
	err := n.Deliver(context.Background(), domain.Notification{Kind: domain.NotifySOSCreated})

	require.Error(t, err)
	require.EqualValues(t, 3, calls.Load())
}

func TestNotifier_Deliver_ClientErrorIsPermanent(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	n := workers.NewNotifier(testLogger(), srv.URL, nil, nil, workers.WithInitialInterval(time.Millisecond))
	require.Error(t, n.Deliver(context.Background(), domain.Notification{Kind: domain.NotifySOSCreated}))
	require.EqualValues(t, 1, calls.Load())
}

func TestNotifier_Run_DrainsQueue(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	q := &chanQueue{ch: make(chan domain.Notification, 2)}
	q.ch <- domain.Notification{Kind: domain.NotifySOSCreated}
	q.ch <- domain.Notification{Kind: domain.NotifySOSCancelled}

	rec := &deliveries{}
	n := workers.NewNotifier(testLogger(), srv.URL, q, rec, workers.WithPollTimeout(10*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		n.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(rec.results("sos.created")) == 1 && len(rec.results("sos.cancelled")) == 1
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-done
	require.Equal(t, []bool{true}, rec.results("sos.created"))
}

type deadLetters struct {
	mu   sync.Mutex
	got  []domain.Notification
	errs []error
}

func (d *deadLetters) DeadLetter(_ context.Context, n domain.Notification, cause error) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.got = append(d.got, n)
	d.errs = append(d.errs, cause)
	return nil
}

func (d *deadLetters) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.got)
}

func TestNotifier_Run_DeadLettersRejectedEvents(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Acadia-Event") == string(domain.NotifyWalkStarted) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	q := &chanQueue{ch: make(chan domain.Notification, 2)}
	walkID := uuid.New()
	q.ch <- domain.Notification{Kind: domain.NotifyWalkStarted, SubjectID: walkID}
	q.ch <- domain.Notification{Kind: domain.NotifySOSCreated}

	rec := &deliveries{}
	dead := &deadLetters{}
	n := workers.NewNotifier(testLogger(), srv.URL, q, rec,
		workers.WithPollTimeout(10*time.Millisecond), workers.WithDeadLetters(dead))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		n.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(rec.results("sos.created")) == 1 && dead.count() == 1
	}, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done

	require.Equal(t, walkID, dead.got[0].SubjectID)
	require.ErrorContains(t, dead.errs[0], "422")
	require.Equal(t, []bool{false}, rec.results("walk.started"))
}

type countingAssigner struct {
	calls atomic.Int32
}

func (a *countingAssigner) DispatchPending(context.Context) (int, error) {
	a.calls.Add(1)
	return 1, nil
}

type assigned struct{ n atomic.Int64 }

func (a *assigned) EscortsAssigned(n int) { a.n.Add(int64(n)) }

func TestEscortDispatcher_TicksOnClock(t *testing.T) {
	t.Parallel()

	clk := clock.NewMock()
	as := &countingAssigner{}
	rec := &assigned{}
	d := workers.NewEscortDispatcher(as, 2*time.Second, clk, rec, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	for i := 1; i <= 3; i++ {
		// ticker registration happens inside Run; keep advancing until it fires
		require.Eventually(t, func() bool {
			clk.Add(2 * time.Second)
			return as.calls.Load() >= int32(i)
		}, time.Second, 5*time.Millisecond)
	}

	cancel()
	<-done
	require.GreaterOrEqual(t, rec.n.Load(), int64(3))
}
