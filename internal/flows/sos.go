package flows

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"acadiasafe/internal/client"
	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"

	"github.com/google/uuid"
)

const SOSCountdownSeconds = 3

type SOSAPI interface {
	Create(ctx context.Context, req domain.CreateSOSRequest) (*domain.SOSAlert, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

type SOSState interface{ sosState() }

// SOSSelecting is the category picker.
type SOSSelecting struct{}

// SOSCountdown counts down to sending. Remaining 0 means the alert is being
// sent and can no longer be cancelled.
type SOSCountdown struct {
	Category  *string
	Remaining int
}

type SOSSent struct {
	Alert domain.SOSAlert
}

func (SOSSelecting) sosState() {}
func (SOSCountdown) sosState() {}
func (SOSSent) sosState()      {}

type SOSFlow struct {
	api  SOSAPI
	opts options

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	state  SOSState
	ticker *loop
	closed bool
}

func NewSOSFlow(api SOSAPI, opts ...Option) *SOSFlow {
	ctx, cancel := context.WithCancel(context.Background())
	return &SOSFlow{
		api:    api,
		opts:   buildOptions(opts),
		ctx:    ctx,
		cancel: cancel,
		state:  SOSSelecting{},
	}
}

func (f *SOSFlow) State() SOSState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Remaining is the countdown value, or the full countdown outside of it.
func (f *SOSFlow) Remaining() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.state.(SOSCountdown); ok {
		return c.Remaining
	}
	return SOSCountdownSeconds
}

// Select starts the countdown for one of domain.SOSCategories.
func (f *SOSFlow) Select(category string) error {
	if !slices.Contains(domain.SOSCategories, category) {
		return e.WithDetail(e.ErrInvalidInput, "Unknown SOS category")
	}
	return f.begin(&category)
}

// SendNow starts the countdown without a category.
func (f *SOSFlow) SendNow() error {
	return f.begin(nil)
}

func (f *SOSFlow) begin(category *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrClosed
	}
	if _, ok := f.state.(SOSSelecting); !ok {
		return ErrInvalidTransition
	}
	f.state = SOSCountdown{Category: category, Remaining: SOSCountdownSeconds}
	f.ticker = startLoop(f.opts.clock, time.Second, f.tick)
	return nil
}

// CancelCountdown returns to category selection without sending anything.
func (f *SOSFlow) CancelCountdown() error {
	f.mu.Lock()
	c, ok := f.state.(SOSCountdown)
	if !ok || c.Remaining == 0 {
		f.mu.Unlock()
		return ErrInvalidTransition
	}
	t := f.ticker
	f.ticker = nil
	f.state = SOSSelecting{}
	f.mu.Unlock()

	t.stop()
	return nil
}

func (f *SOSFlow) tick() {
	f.mu.Lock()
	c, ok := f.state.(SOSCountdown)
	if !ok || c.Remaining == 0 || f.closed {
		f.mu.Unlock()
		return
	}
	c.Remaining--
	f.state = c
	if c.Remaining > 0 {
		f.mu.Unlock()
		return
	}
	t := f.ticker
	f.ticker = nil
	f.mu.Unlock()

	t.halt()
	f.send(c.Category)
}

func (f *SOSFlow) send(category *string) {
	pos := f.opts.position(f.ctx)
	alert, err := f.api.Create(f.ctx, domain.CreateSOSRequest{Lat: pos.Lat, Lng: pos.Lng, AlertType: category})

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	if err != nil {
		f.state = SOSSelecting{}
		f.mu.Unlock()

		f.opts.logger.Error("sos create failed", slog.Any("error", err))
		f.opts.notifier.Notify(Notice{
			Level:   NoticeError,
			Title:   "SOS not sent",
			Message: fmt.Sprintf("Could not send SOS: %s. Call Security at %s.", client.DetailOf(err), domain.SecurityPhone),
		})
		return
	}
	f.state = SOSSent{Alert: *alert}
	f.mu.Unlock()

	f.opts.logger.Info("sos sent", slog.String("alert_id", alert.ID.String()))
	f.opts.notifier.Notify(Notice{Level: NoticeInfo, Title: "SOS sent", Message: "Campus Security has been alerted. Help is on the way."})
}

// Cancel withdraws a sent alert. The server call is best effort: the flow
// closes whatever the outcome and the error is only reported.
func (f *SOSFlow) Cancel(ctx context.Context) error {
	f.mu.Lock()
	sent, ok := f.state.(SOSSent)
	f.mu.Unlock()
	if !ok {
		return ErrInvalidTransition
	}

	err := f.api.Cancel(ctx, sent.Alert.ID)
	if err != nil {
		f.opts.logger.Warn("sos cancel failed", slog.Any("error", err))
	}
	f.Close()
	return err
}

func (f *SOSFlow) SecurityPhone() string {
	return domain.SecurityPhone
}

func (f *SOSFlow) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	t := f.ticker
	f.ticker = nil
	f.mu.Unlock()

	f.cancel()
	t.stop()
}
