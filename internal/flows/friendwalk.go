package flows

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"acadiasafe/internal/client"
	"acadiasafe/internal/domain"
	"acadiasafe/internal/forms"
	"acadiasafe/pkg/e"

	"github.com/google/uuid"
)

const DefaultWalkMinutes = 30

type WalkAPI interface {
	Start(ctx context.Context, req domain.StartWalkRequest) (*domain.FriendWalk, error)
	GetActive(ctx context.Context) (*domain.FriendWalk, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, lat, lng float64) error
	Extend(ctx context.Context, id uuid.UUID, minutes int) (*domain.ExtendWalkResponse, error)
	Complete(ctx context.Context, id uuid.UUID) error
}

type ContactAPI interface {
	List(ctx context.Context) ([]domain.TrustedContact, error)
	Add(ctx context.Context, req domain.CreateContactRequest) (*domain.TrustedContact, error)
}

type WalkState interface{ walkState() }

type WalkSetup struct {
	Contacts []domain.TrustedContact
	Selected []uuid.UUID
	Duration int
}

type WalkAddContact struct{}

// WalkActive carries the running walk. Remaining is zero for walks without
// an end time.
type WalkActive struct {
	Walk      domain.FriendWalk
	Remaining time.Duration
}

func (WalkSetup) walkState()      {}
func (WalkAddContact) walkState() {}
func (WalkActive) walkState()     {}

type FriendWalkFlow struct {
	walks    WalkAPI
	contacts ContactAPI
	opts     options

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	state  WalkState
	setup  WalkSetup
	ticker *loop
	pusher *loop
	// autoDone is set once the end-of-walk completion has been tried.
	autoDone bool
	closed   bool
}

func NewFriendWalkFlow(walks WalkAPI, contacts ContactAPI, opts ...Option) *FriendWalkFlow {
	ctx, cancel := context.WithCancel(context.Background())
	setup := WalkSetup{Duration: DefaultWalkMinutes}
	return &FriendWalkFlow{
		walks:    walks,
		contacts: contacts,
		opts:     buildOptions(opts),
		ctx:      ctx,
		cancel:   cancel,
		state:    setup,
		setup:    setup,
	}
}

func (f *FriendWalkFlow) State() WalkState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Load lists the trusted contacts and resumes an active walk if there is
// one. The contacts are kept for the setup screen shown after the walk ends.
// While a walk is active a contacts failure is only logged.
func (f *FriendWalkFlow) Load(ctx context.Context) error {
	active, err := f.walks.GetActive(ctx)
	if err != nil {
		return err
	}

	list, lerr := f.contacts.List(ctx)
	if lerr != nil {
		if active == nil {
			return lerr
		}
		f.opts.logger.Warn("trusted contacts unavailable", slog.Any("error", lerr))
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	if lerr == nil {
		f.setup.Contacts = list
		f.setup.Selected = keepKnown(f.setup.Selected, list)
	}
	if active == nil {
		f.state = f.setup
	}
	f.mu.Unlock()

	if active != nil {
		f.activate(*active)
	}
	return nil
}

func (f *FriendWalkFlow) ToggleContact(id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.state.(WalkSetup); !ok {
		return ErrInvalidTransition
	}
	known := slices.ContainsFunc(f.setup.Contacts, func(c domain.TrustedContact) bool { return c.ID == id })
	if !known {
		return e.WithDetail(e.ErrInvalidInput, "Unknown contact")
	}

	if i := slices.Index(f.setup.Selected, id); i >= 0 {
		f.setup.Selected = slices.Delete(slices.Clone(f.setup.Selected), i, i+1)
	} else {
		f.setup.Selected = append(slices.Clone(f.setup.Selected), id)
	}
	f.state = f.setup
	return nil
}

func (f *FriendWalkFlow) SetDuration(minutes int) error {
	if !domain.ValidWalkDuration(minutes) {
		return e.WithDetail(e.ErrInvalidInput, "Duration must be 15, 30, 60 minutes or until stopped")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.state.(WalkSetup); !ok {
		return ErrInvalidTransition
	}
	f.setup.Duration = minutes
	f.state = f.setup
	return nil
}

func (f *FriendWalkFlow) OpenAddContact() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.state.(WalkSetup); !ok {
		return ErrInvalidTransition
	}
	f.state = WalkAddContact{}
	return nil
}

func (f *FriendWalkFlow) CancelAddContact() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.state.(WalkAddContact); !ok {
		return ErrInvalidTransition
	}
	f.state = f.setup
	return nil
}

// AddContact saves a new trusted contact and returns to setup with the
// refreshed list.
func (f *FriendWalkFlow) AddContact(ctx context.Context, form forms.Contact) error {
	f.mu.Lock()
	_, ok := f.state.(WalkAddContact)
	f.mu.Unlock()
	if !ok {
		return ErrInvalidTransition
	}
	if err := forms.Validate(form); err != nil {
		return err
	}

	if _, err := f.contacts.Add(ctx, form.Request()); err != nil {
		f.opts.notifier.Notify(Notice{Level: NoticeError, Title: "Contacts", Message: client.DetailOf(err)})
		return err
	}
	list, err := f.contacts.List(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.setup.Contacts = list
	f.setup.Selected = keepKnown(f.setup.Selected, list)
	f.state = f.setup
	return nil
}

func (f *FriendWalkFlow) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	if _, ok := f.state.(WalkSetup); !ok {
		f.mu.Unlock()
		return ErrInvalidTransition
	}
	setup := f.setup
	f.mu.Unlock()

	if len(setup.Selected) == 0 {
		return forms.ValidationErrors{"contacts": "Select at least one trusted contact"}
	}

	pos := f.opts.position(ctx)
	walk, err := f.walks.Start(ctx, domain.StartWalkRequest{
		ContactIDs:      setup.Selected,
		DurationMinutes: setup.Duration,
		Lat:             pos.Lat,
		Lng:             pos.Lng,
	})
	if err != nil {
		f.opts.notifier.Notify(Notice{Level: NoticeError, Title: "Friend Walk", Message: client.DetailOf(err)})
		return err
	}
	f.opts.logger.Info("friend walk started", slog.String("walk_id", walk.ID.String()), slog.Int("duration", walk.DurationMinutes))
	f.activate(*walk)
	return nil
}

// Extend adds domain.WalkExtendMinutes and re-reads the walk.
func (f *FriendWalkFlow) Extend(ctx context.Context) error {
	f.mu.Lock()
	a, ok := f.state.(WalkActive)
	f.mu.Unlock()
	if !ok {
		return ErrInvalidTransition
	}

	if _, err := f.walks.Extend(ctx, a.Walk.ID, domain.WalkExtendMinutes); err != nil {
		f.opts.notifier.Notify(Notice{Level: NoticeError, Title: "Friend Walk", Message: client.DetailOf(err)})
		return err
	}
	walk, err := f.walks.GetActive(ctx)
	if err != nil {
		return err
	}
	if walk == nil {
		f.deactivate()
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, still := f.state.(WalkActive); !still || f.closed {
		return nil
	}
	f.autoDone = false
	f.state = WalkActive{Walk: *walk, Remaining: walk.Remaining(f.opts.clock.Now())}
	return nil
}

// Complete ends the walk. On failure the walk stays active.
func (f *FriendWalkFlow) Complete(ctx context.Context) error {
	f.mu.Lock()
	a, ok := f.state.(WalkActive)
	f.mu.Unlock()
	if !ok {
		return ErrInvalidTransition
	}

	if err := f.walks.Complete(ctx, a.Walk.ID); err != nil {
		f.opts.notifier.Notify(Notice{Level: NoticeError, Title: "Friend Walk", Message: "Failed to complete walk"})
		return err
	}
	f.deactivate()
	f.opts.notifier.Notify(Notice{Level: NoticeInfo, Title: "Friend Walk", Message: "Your contacts have been told you arrived safely"})
	return nil
}

func (f *FriendWalkFlow) activate(walk domain.FriendWalk) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.autoDone = false
	f.state = WalkActive{Walk: walk, Remaining: walk.Remaining(f.opts.clock.Now())}
	if f.ticker == nil {
		f.ticker = startLoop(f.opts.clock, time.Second, f.tick)
	}
	if f.pusher == nil {
		f.pusher = startLoop(f.opts.clock, f.opts.locationInterval, f.push)
	}
	f.mu.Unlock()
}

// deactivate returns to setup and stops both timers. Not for use from the
// tick goroutine.
func (f *FriendWalkFlow) deactivate() {
	f.mu.Lock()
	if !f.closed {
		f.state = f.setup
	}
	t, p := f.ticker, f.pusher
	f.ticker, f.pusher = nil, nil
	f.mu.Unlock()

	t.stop()
	p.stop()
}

func (f *FriendWalkFlow) tick() {
	f.mu.Lock()
	a, ok := f.state.(WalkActive)
	if !ok || f.closed {
		f.mu.Unlock()
		return
	}
	a.Remaining = a.Walk.Remaining(f.opts.clock.Now())
	f.state = a

	if !a.Walk.Bounded() || a.Remaining > 0 || f.autoDone {
		f.mu.Unlock()
		return
	}
	f.autoDone = true
	f.mu.Unlock()

	if err := f.walks.Complete(f.ctx, a.Walk.ID); err != nil {
		if !errors.Is(err, context.Canceled) {
			f.opts.logger.Warn("friend walk auto-complete failed", slog.Any("error", err))
			f.opts.notifier.Notify(Notice{Level: NoticeError, Title: "Friend Walk", Message: "Time is up but the walk could not be completed. Please end it manually."})
		}
		return
	}

	f.mu.Lock()
	if cur, still := f.state.(WalkActive); !still || cur.Walk.ID != a.Walk.ID || f.closed {
		f.mu.Unlock()
		return
	}
	f.state = f.setup
	t, p := f.ticker, f.pusher
	f.ticker, f.pusher = nil, nil
	f.mu.Unlock()

	t.halt()
	p.stop()
	f.opts.logger.Info("friend walk auto-completed", slog.String("walk_id", a.Walk.ID.String()))
	f.opts.notifier.Notify(Notice{Level: NoticeInfo, Title: "Friend Walk", Message: "Walk time is up. Your walk has been completed."})
}

func (f *FriendWalkFlow) push() {
	f.mu.Lock()
	a, ok := f.state.(WalkActive)
	f.mu.Unlock()
	if !ok {
		return
	}

	pos := f.opts.position(f.ctx)
	if err := f.walks.UpdateLocation(f.ctx, a.Walk.ID, pos.Lat, pos.Lng); err != nil && !errors.Is(err, context.Canceled) {
		f.opts.logger.Warn("friend walk location update failed", slog.Any("error", err))
	}
}

func (f *FriendWalkFlow) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	t, p := f.ticker, f.pusher
	f.ticker, f.pusher = nil, nil
	f.mu.Unlock()

	f.cancel()
	t.stop()
	p.stop()
}

func keepKnown(selected []uuid.UUID, list []domain.TrustedContact) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(selected))
	for _, id := range selected {
		if slices.ContainsFunc(list, func(c domain.TrustedContact) bool { return c.ID == id }) {
			out = append(out, id)
		}
	}
	return out
}
