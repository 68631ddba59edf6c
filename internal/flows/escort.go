package flows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"acadiasafe/internal/client"
	"acadiasafe/internal/domain"
	"acadiasafe/internal/forms"
	"acadiasafe/internal/geo"
	"acadiasafe/pkg/e"

	"github.com/google/uuid"
)

var ErrAssignFailed = errors.New("flows: escort assignment failed")

// EscortDestination is used for every request; the form only names the
// destination.
var EscortDestination = geo.Point{Lat: 45.0880, Lng: -64.3670}

type EscortAPI interface {
	Create(ctx context.Context, req domain.CreateEscortRequest) (*domain.EscortRequest, error)
	GetActive(ctx context.Context) (*domain.EscortRequest, error)
	Cancel(ctx context.Context, id uuid.UUID) error
	Assign(ctx context.Context, id uuid.UUID) error
}

// AssignmentStrategy moves a waiting request forward. Step runs once per
// Interval and returns the server's current view of the request, nil once
// it is no longer active.
type AssignmentStrategy interface {
	Interval() time.Duration
	Step(ctx context.Context, api EscortAPI, req domain.EscortRequest) (*domain.EscortRequest, error)
}

// PollStrategy follows the server: the dispatcher assigns officers and the
// client just re-reads.
type PollStrategy struct {
	Every time.Duration
}

func (p PollStrategy) Interval() time.Duration {
	if p.Every <= 0 {
		return 3 * time.Second
	}
	return p.Every
}

func (PollStrategy) Step(ctx context.Context, api EscortAPI, _ domain.EscortRequest) (*domain.EscortRequest, error) {
	return api.GetActive(ctx)
}

// SimulatedAssignStrategy waits Delay, asks the server to assign the demo
// officer and then re-reads the request.
type SimulatedAssignStrategy struct {
	Delay time.Duration
}

func (s SimulatedAssignStrategy) Interval() time.Duration {
	if s.Delay <= 0 {
		return 5 * time.Second
	}
	return s.Delay
}

// Step returns ErrAssignFailed when the server refuses the assignment for
// any reason other than the request no longer pending.
func (SimulatedAssignStrategy) Step(ctx context.Context, api EscortAPI, req domain.EscortRequest) (*domain.EscortRequest, error) {
	if err := api.Assign(ctx, req.ID); err != nil && !errors.Is(err, e.ErrNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrAssignFailed, err)
	}
	// not pending any more: the re-read reports what actually happened
	return api.GetActive(ctx)
}

type EscortState interface{ escortState() }

type EscortForm struct{}

type EscortWaiting struct {
	Request domain.EscortRequest
}

type EscortAssigned struct {
	Request domain.EscortRequest
}

func (EscortForm) escortState()     {}
func (EscortWaiting) escortState()  {}
func (EscortAssigned) escortState() {}

type EscortFlow struct {
	api      EscortAPI
	strategy AssignmentStrategy
	opts     options

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	state  EscortState
	poller *loop
	// warned is the request whose assignment failure was already shown.
	warned uuid.UUID
	closed bool
}

func NewEscortFlow(api EscortAPI, strategy AssignmentStrategy, opts ...Option) *EscortFlow {
	if strategy == nil {
		strategy = PollStrategy{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &EscortFlow{
		api:      api,
		strategy: strategy,
		opts:     buildOptions(opts),
		ctx:      ctx,
		cancel:   cancel,
		state:    EscortForm{},
	}
}

func (f *EscortFlow) State() EscortState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Resume rebuilds the screen from the server's active request.
func (f *EscortFlow) Resume(ctx context.Context) error {
	req, err := f.api.GetActive(ctx)
	if err != nil {
		return err
	}
	f.apply(req)
	return nil
}

func (f *EscortFlow) Submit(ctx context.Context, form forms.Escort) error {
	if err := forms.Validate(form); err != nil {
		return err
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	if _, ok := f.state.(EscortForm); !ok {
		f.mu.Unlock()
		return ErrInvalidTransition
	}
	f.mu.Unlock()

	pos := f.opts.position(ctx)
	pickup := strings.TrimSpace(form.PickupName)
	if pickup == "" {
		pickup = domain.DefaultPickupName
	}
	dest := strings.TrimSpace(form.Destination)
	req := domain.CreateEscortRequest{
		PickupLat:       pos.Lat,
		PickupLng:       pos.Lng,
		PickupName:      &pickup,
		DestinationLat:  EscortDestination.Lat,
		DestinationLng:  EscortDestination.Lng,
		DestinationName: &dest,
	}
	if notes := strings.TrimSpace(form.Notes); notes != "" {
		req.Notes = &notes
	}

	created, err := f.api.Create(ctx, req)
	if err != nil {
		f.opts.notifier.Notify(Notice{Level: NoticeError, Title: "Escort", Message: client.DetailOf(err)})
		return err
	}
	f.opts.logger.Info("escort requested", slog.String("escort_id", created.ID.String()))
	f.apply(created)
	return nil
}

// Cancel withdraws the current request. On failure nothing changes.
func (f *EscortFlow) Cancel(ctx context.Context) error {
	f.mu.Lock()
	var id uuid.UUID
	switch st := f.state.(type) {
	case EscortWaiting:
		id = st.Request.ID
	case EscortAssigned:
		id = st.Request.ID
	default:
		f.mu.Unlock()
		return ErrInvalidTransition
	}
	f.mu.Unlock()

	if err := f.api.Cancel(ctx, id); err != nil {
		f.opts.notifier.Notify(Notice{Level: NoticeError, Title: "Escort", Message: "Failed to cancel request"})
		return err
	}
	f.apply(nil)
	return nil
}

// apply moves to the state matching req. Only Waiting keeps the strategy
// loop running.
func (f *EscortFlow) apply(req *domain.EscortRequest) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}

	var stale *loop
	switch {
	case req == nil || !req.Active():
		f.state = EscortForm{}
		stale, f.poller = f.poller, nil
	case req.Status == domain.EscortAssigned:
		f.state = EscortAssigned{Request: *req}
		stale, f.poller = f.poller, nil
	default:
		f.state = EscortWaiting{Request: *req}
		if f.poller == nil {
			f.poller = startLoop(f.opts.clock, f.strategy.Interval(), f.step)
		}
	}
	f.mu.Unlock()

	stale.stop()
}

func (f *EscortFlow) step() {
	f.mu.Lock()
	w, ok := f.state.(EscortWaiting)
	f.mu.Unlock()
	if !ok {
		return
	}

	got, err := f.strategy.Step(f.ctx, f.api, w.Request)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		f.opts.logger.Warn("escort status check failed", slog.Any("error", err))
		if errors.Is(err, ErrAssignFailed) {
			f.warnAssign(w.Request.ID, err)
		}
		return
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	cur, still := f.state.(EscortWaiting)
	if !still || cur.Request.ID != w.Request.ID {
		f.mu.Unlock()
		return
	}

	var own *loop
	switch {
	case got == nil || got.ID != w.Request.ID || !got.Active():
		f.state = EscortForm{}
		own, f.poller = f.poller, nil
		defer f.opts.notifier.Notify(Notice{Level: NoticeInfo, Title: "Escort", Message: "Your escort request is no longer active"})
	case got.Status == domain.EscortAssigned:
		f.state = EscortAssigned{Request: *got}
		own, f.poller = f.poller, nil
		name := domain.DefaultOfficerName
		if got.OfficerName != nil {
			name = *got.OfficerName
		}
		defer f.opts.notifier.Notify(Notice{Level: NoticeInfo, Title: "Officer assigned", Message: name + " is on the way"})
	default:
		f.state = EscortWaiting{Request: *got}
	}
	f.mu.Unlock()

	// running inside the loop: halt, never stop
	own.halt()
}

// warnAssign raises one notice per request; later failures only log.
func (f *EscortFlow) warnAssign(id uuid.UUID, err error) {
	f.mu.Lock()
	first := f.warned != id && !f.closed
	if first {
		f.warned = id
	}
	f.mu.Unlock()

	if first {
		f.opts.notifier.Notify(Notice{Level: NoticeError, Title: "Escort", Message: "Could not assign an officer: " + client.DetailOf(err)})
	}
}

func (f *EscortFlow) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	p := f.poller
	f.poller = nil
	f.mu.Unlock()

	f.cancel()
	p.stop()
}
