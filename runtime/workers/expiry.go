package workers

import (
	"context"
	"log/slog"
	"time"
)

// Expirer ends the live meetups that started before cutoff.
type Expirer interface {
	EndExpired(ctx context.Context, cutoff time.Time) (int, error)
}

// ExpiryWorker periodically closes meetups that are over.
type ExpiryWorker struct {
	log      *slog.Logger
	expirer  Expirer
	interval time.Duration
	grace    time.Duration
	now      func() time.Time
}

func NewExpiryWorker(log *slog.Logger, expirer Expirer, interval, grace time.Duration) *ExpiryWorker {
	return &ExpiryWorker{log: log, expirer: expirer, interval: interval, grace: grace, now: time.Now}
}

// Run checks every interval until ctx is done.
func (w *ExpiryWorker) Run(ctx context.Context) error {
	w.log.Info("Starting expiry worker", "interval", w.interval, "grace", w.grace)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			ended, err := w.expirer.EndExpired(ctx, w.now().Add(-w.grace))
			if err != nil {
				w.log.Warn("Some meetups could not be ended", "ended", ended, "error", err)
				continue
			}
			if ended > 0 {
				w.log.Info("Ended past meetups", "count", ended)
			}
		}
	}
}
