package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"acadiasafe/internal/domain"
	"acadiasafe/pkg/e"

	"github.com/redis/go-redis/v9"
)

const deadLetterCap = 1000

// NotificationQueue keeps SOS events on their own list, which BRPOP
// drains before the routine list. Both lists are FIFO. The routine list is
// capped at maxLen, so under overload its oldest events are dropped; SOS
// events are never trimmed.
type NotificationQueue struct {
	client *redis.Client
	key    string
	urgent string
	dead   string
	maxLen int64
}

// DeadLetter is an event the notifier gave up on.
type DeadLetter struct {
	Notification domain.Notification `json:"notification"`
	Reason       string              `json:"reason"`
	FailedAt     time.Time           `json:"failed_at"`
}

func NewNotificationQueue(client *redis.Client, key string, maxLen int64) *NotificationQueue {
	return &NotificationQueue{client: client, key: key, urgent: key + ":sos", dead: key + ":dead", maxLen: maxLen}
}

func isUrgent(k domain.NotificationKind) bool {
	return k == domain.NotifySOSCreated || k == domain.NotifySOSCancelled
}

func (q *NotificationQueue) Enqueue(ctx context.Context, n domain.Notification) error {
	b, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	if isUrgent(n.Kind) {
		return q.client.LPush(ctx, q.urgent, b).Err()
	}
	_, err = q.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, q.key, b)
		if q.maxLen > 0 {
			p.LTrim(ctx, q.key, 0, q.maxLen-1)
		}
		return nil
	})
	return err
}

// BRPop blocks up to timeout; an empty queue yields e.ErrQueueEmpty.
func (q *NotificationQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.Notification, error) {
	var n domain.Notification

	res, err := q.client.BRPop(ctx, timeout, q.urgent, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return n, e.ErrQueueEmpty
		}
		return n, err
	}
	if len(res) < 2 {
		return n, e.ErrQueueEmpty
	}
	if err := json.Unmarshal([]byte(res[1]), &n); err != nil {
		return n, fmt.Errorf("decode notification: %w", err)
	}
	return n, nil
}

// Len counts events waiting on both lists.
func (q *NotificationQueue) Len(ctx context.Context) (int64, error) {
	var sos, routine *redis.IntCmd
	_, err := q.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		sos = p.LLen(ctx, q.urgent)
		routine = p.LLen(ctx, q.key)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return sos.Val() + routine.Val(), nil
}

// DeadLetter records an undeliverable event. Only the newest deadLetterCap
// entries are kept.
func (q *NotificationQueue) DeadLetter(ctx context.Context, n domain.Notification, cause error) error {
	b, err := json.Marshal(DeadLetter{Notification: n, Reason: cause.Error(), FailedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal dead letter: %w", err)
	}
	_, err = q.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, q.dead, b)
		p.LTrim(ctx, q.dead, 0, deadLetterCap-1)
		return nil
	})
	return err
}

// DeadLetters returns up to limit entries, newest first.
func (q *NotificationQueue) DeadLetters(ctx context.Context, limit int64) ([]DeadLetter, error) {
	raw, err := q.client.LRange(ctx, q.dead, 0, limit-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]DeadLetter, 0, len(raw))
	for _, s := range raw {
		var d DeadLetter
		if err := json.Unmarshal([]byte(s), &d); err != nil {
			return nil, fmt.Errorf("decode dead letter: %w", err)
		}
		out = append(out, d)
	}
	return out, nil
}
