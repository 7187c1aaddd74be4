package workers

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type recordingExpirer struct {
	mu      sync.Mutex
	cutoffs []time.Time
}

func (e *recordingExpirer) EndExpired(_ context.Context, cutoff time.Time) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cutoffs = append(e.cutoffs, cutoff)
	return 0, nil
}

func (e *recordingExpirer) calls() []time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]time.Time(nil), e.cutoffs...)
}

func TestExpiryWorker_Uses_Grace_Period(t *testing.T) {
	req := require.New(t)
	now := time.Date(2030, 7, 4, 18, 0, 0, 0, time.UTC)
	expirer := &recordingExpirer{}
	worker := NewExpiryWorker(logs.GetLoggerFromLevel(slog.LevelDebug), expirer, 10*time.Millisecond, 3*time.Hour)
	worker.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	// Then each tick asks for meetups started more than the grace period ago
	req.Eventually(func() bool { return len(expirer.calls()) >= 2 }, time.Second, 5*time.Millisecond)
	req.Equal(now.Add(-3*time.Hour), expirer.calls()[0])

	// And the worker stops with its context
	cancel()
	req.ErrorIs(<-done, context.Canceled)
}
