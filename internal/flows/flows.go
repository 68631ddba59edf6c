// Package flows holds the screen controllers. Each controller owns its state,
// guarded by a mutex, and at most a couple of timer goroutines driven by an
// injected clock. Close releases every timer a controller started.
package flows

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"

	"acadiasafe/internal/domain"
	"acadiasafe/internal/geo"
)

var (
	ErrInvalidTransition = errors.New("flows: action not allowed in the current state")
	ErrClosed            = errors.New("flows: controller closed")
)

// FallbackPosition is the campus security office, used whenever the device
// cannot report a position.
var FallbackPosition = geo.Point{Lat: domain.CampusLat, Lng: domain.CampusLng}

type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is a user-facing message a controller raises outside the direct
// return value of a call, e.g. from a timer.
type Notice struct {
	Level   NoticeLevel
	Title   string
	Message string
}

type Notifier interface {
	Notify(Notice)
}

type NotifierFunc func(Notice)

func (f NotifierFunc) Notify(n Notice) { f(n) }

type Locator interface {
	Locate(ctx context.Context) (geo.Point, error)
}

type LocatorFunc func(ctx context.Context) (geo.Point, error)

func (f LocatorFunc) Locate(ctx context.Context) (geo.Point, error) { return f(ctx) }

// Position asks loc for the current position and falls back to
// FallbackPosition on any failure.
func Position(ctx context.Context, loc Locator, logger *slog.Logger) geo.Point {
	if loc == nil {
		return FallbackPosition
	}
	p, err := loc.Locate(ctx)
	if err != nil {
		if logger != nil {
			logger.Debug("locate failed, using fallback", slog.Any("error", err))
		}
		return FallbackPosition
	}
	return p
}

type options struct {
	clock               clock.Clock
	locator             Locator
	notifier            Notifier
	logger              *slog.Logger
	requireContactPhone bool
	locationInterval    time.Duration
}

type Option func(*options)

func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

func WithLocator(l Locator) Option {
	return func(o *options) { o.locator = l }
}

func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notifier = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithContactPhoneRequired makes the incident form insist on a phone number
// when the reporter asks to be contacted.
func WithContactPhoneRequired(required bool) Option {
	return func(o *options) { o.requireContactPhone = required }
}

// WithLocationInterval sets how often an active friend walk pushes the
// current position.
func WithLocationInterval(d time.Duration) Option {
	return func(o *options) { o.locationInterval = d }
}

func buildOptions(opts []Option) options {
	o := options{
		clock:            clock.New(),
		notifier:         NotifierFunc(func(Notice) {}),
		logger:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		locationInterval: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) position(ctx context.Context) geo.Point {
	return Position(ctx, o.locator, o.logger)
}

// loop calls fn on every tick until stopped.
type loop struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// startLoop creates the ticker before returning, so a mock clock advanced
// right after the call is observed.
func startLoop(clk clock.Clock, every time.Duration, fn func()) *loop {
	ctx, cancel := context.WithCancel(context.Background())
	l := &loop{cancel: cancel, done: make(chan struct{})}
	t := clk.Ticker(every)

	go func() {
		defer close(l.done)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if ctx.Err() != nil {
					return
				}
				fn()
			}
		}
	}()
	return l
}

// stop cancels the loop and waits for it. Never call it while holding a
// lock fn also takes, nor from inside fn.
func (l *loop) stop() {
	if l == nil {
		return
	}
	l.cancel()
	<-l.done
}

// halt cancels without waiting; safe from inside fn.
func (l *loop) halt() {
	if l == nil {
		return
	}
	l.cancel()
}
