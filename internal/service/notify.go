package service

import (
	"context"
	"log/slog"

	"acadiasafe/internal/domain"
)

// notifier queues events best-effort; a failed enqueue never fails the
// request that produced it.
type notifier struct {
	queue  NotificationQueue
	logger *slog.Logger
}

func newNotifier(q NotificationQueue, logger *slog.Logger) notifier {
	return notifier{queue: q, logger: logger}
}

func (n notifier) publish(ctx context.Context, ev domain.Notification) {
	if n.queue == nil {
		return
	}
	if err := n.queue.Enqueue(ctx, ev); err != nil {
		n.logger.Warn("notification enqueue failed",
			slog.String("kind", string(ev.Kind)),
			slog.String("subject_id", ev.SubjectID.String()),
			slog.Any("error", err))
	}
}
