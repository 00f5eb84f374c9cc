package worker

import (
	"context"
	"log/slog"
	"time"
)

// Refresher runs a task on a fixed interval until its context is cancelled.
type Refresher struct {
	name     string
	interval time.Duration
	task     func(ctx context.Context) error
	log      *slog.Logger
}

// NewRefresher creates a new Refresher worker.
func NewRefresher(
	name string,
	interval time.Duration,
	task func(ctx context.Context) error,
) *Refresher {
	return &Refresher{
		name:     name,
		interval: interval,
		task:     task,
		log:      slog.Default().With("component", "refresher", "task", name),
	}
}

// Start runs the refresh loop. It blocks until ctx is done.
func (r *Refresher) Start(ctx context.Context) {
	if r.interval <= 0 {
		return // Refresh disabled
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.log.Debug("Refresher started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.run(ctx)
		}
	}
}

func (r *Refresher) run(ctx context.Context) {
	start := time.Now()
	if err := r.task(ctx); err != nil {
		r.log.Error("Refresh failed", "error", err)
		return
	}
	r.log.Debug("Refresh completed", "duration", time.Since(start))
}
