package workers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"

	"github.com/cenkalti/backoff/v4"
)

const maxDeliveryAttempts = 3

type NotificationSource interface {
	BRPop(ctx context.Context, timeout time.Duration) (domain.Notification, error)
}

// DeadLetterSink keeps events that could not be delivered.
type DeadLetterSink interface {
	DeadLetter(ctx context.Context, n domain.Notification, cause error) error
}

type DeliveryRecorder interface {
	NotificationDelivered(kind string, ok bool)
}

// Notifier drains the notification queue and POSTs each event to the
// configured webhook.
type Notifier struct {
	logger   *slog.Logger
	url      string
	queue    NotificationSource
	http     *http.Client
	recorder DeliveryRecorder
	dead     DeadLetterSink

	pollTimeout     time.Duration
	initialInterval time.Duration
}

type NotifierOption func(*Notifier)

func WithInitialInterval(d time.Duration) NotifierOption {
	return func(n *Notifier) { n.initialInterval = d }
}

func WithPollTimeout(d time.Duration) NotifierOption {
	return func(n *Notifier) { n.pollTimeout = d }
}

func WithDeadLetters(d DeadLetterSink) NotifierOption {
	return func(n *Notifier) { n.dead = d }
}

func WithHTTPClient(c *http.Client) NotifierOption {
	return func(n *Notifier) { n.http = c }
}

func NewNotifier(logger *slog.Logger, url string, q NotificationSource, rec DeliveryRecorder, opts ...NotifierOption) *Notifier {
	n := &Notifier{
		logger:          logger,
		url:             url,
		queue:           q,
		http:            &http.Client{Timeout: 5 * time.Second},
		recorder:        rec,
		pollTimeout:     5 * time.Second,
		initialInterval: time.Second,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Notifier) Run(ctx context.Context) {
	n.logger.Info("notifier started", slog.String("url", n.url))

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("notifier stopped", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		ev, err := n.queue.BRPop(ctx, n.pollTimeout)
		if err != nil {
			if errors.Is(err, e.ErrQueueEmpty) || ctx.Err() != nil {
				continue
			}
			n.logger.Error("BRPop failed", slog.Any("error", err))
			select {
			case <-ctx.Done():
			case <-time.After(500 * time.Millisecond):
			}
			continue
		}

		err = n.Deliver(ctx, ev)
		if n.recorder != nil {
			n.recorder.NotificationDelivered(string(ev.Kind), err == nil)
		}
		if err != nil && ctx.Err() == nil {
			n.park(ctx, ev, err)
		}
	}
}

// Deliver POSTs one event, retrying transport errors and 5xx responses with
// exponential backoff. 4xx responses are not retried.
func (n *Notifier) Deliver(ctx context.Context, ev domain.Notification) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	attempt := 0
	op := func() error {
		attempt++
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Acadia-Event", string(ev.Kind))

		resp, err := n.http.Do(req)
		if err != nil {
			n.logger.Warn("webhook failed", slog.Int("attempt", attempt), slog.String("reason", err.Error()))
			return err
		}
		_ = resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
			n.logger.Warn("webhook failed", slog.Int("attempt", attempt), slog.String("reason", resp.Status))
			return fmt.Errorf("webhook responded %s", resp.Status)
		default:
			return backoff.Permanent(fmt.Errorf("webhook rejected event: %s", resp.Status))
		}
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = n.initialInterval
	eb.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(eb, maxDeliveryAttempts-1), ctx)
	return backoff.Retry(op, policy)
}

func (n *Notifier) park(ctx context.Context, ev domain.Notification, cause error) {
	attrs := []any{
		slog.String("kind", string(ev.Kind)),
		slog.String("subject_id", ev.SubjectID.String()),
		slog.Any("error", cause),
	}
	if n.dead == nil {
		n.logger.Error("notification dropped", attrs...)
		return
	}
	if err := n.dead.DeadLetter(ctx, ev, cause); err != nil {
		n.logger.Error("notification dropped; dead letter failed", append(attrs, slog.Any("dead_letter_error", err))...)
		return
	}
	n.logger.Warn("notification dead-lettered", attrs...)
}
