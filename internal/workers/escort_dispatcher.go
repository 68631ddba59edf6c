package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
)

type EscortAssigner interface {
	DispatchPending(ctx context.Context) (int, error)
}

type AssignmentRecorder interface {
	EscortsAssigned(n int)
}

// EscortDispatcher periodically hands waiting escort requests to an officer.
type EscortDispatcher struct {
	assigner EscortAssigner
	interval time.Duration
	clock    clock.Clock
	recorder AssignmentRecorder
	logger   *slog.Logger
}

func NewEscortDispatcher(assigner EscortAssigner, interval time.Duration, clk clock.Clock, rec AssignmentRecorder, logger *slog.Logger) *EscortDispatcher {
	return &EscortDispatcher{
		assigner: assigner,
		interval: interval,
		clock:    clk,
		recorder: rec,
		logger:   logger,
	}
}

func (d *EscortDispatcher) Run(ctx context.Context) {
	ticker := d.clock.Ticker(d.interval)
	defer ticker.Stop()

	d.logger.Info("escort dispatcher started", slog.Duration("interval", d.interval))
	for {
		select {
		case <-ctx.Done():
			d.logger.Info("escort dispatcher stopped")
			return
		case <-ticker.C:
			n, err := d.assigner.DispatchPending(ctx)
			if err != nil {
				d.logger.Error("dispatch pending escorts failed", slog.Any("error", err))
			}
			if n > 0 {
				d.logger.Info("escorts assigned", slog.Int("count", n))
				if d.recorder != nil {
					d.recorder.EscortsAssigned(n)
				}
			}
		}
	}
}
