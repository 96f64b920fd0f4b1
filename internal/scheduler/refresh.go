package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Refresher reloads cached state from its source of truth
type Refresher interface {
	RefreshAll(ctx context.Context) error
}

// RefreshJob reconciles every cached trade store with the record service,
// healing caches that diverged after a failed write
type RefreshJob struct {
	refresher Refresher
	timeout   time.Duration
	log       zerolog.Logger
}

// NewRefreshJob creates a refresh job; each run is bounded by timeout
func NewRefreshJob(refresher Refresher, timeout time.Duration, log zerolog.Logger) *RefreshJob {
	return &RefreshJob{
		refresher: refresher,
		timeout:   timeout,
		log:       log.With().Str("job", "refresh_trades").Logger(),
	}
}

// Name returns the job name
func (j *RefreshJob) Name() string {
	return "refresh_trades"
}

// Run executes the job
func (j *RefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	if err := j.refresher.RefreshAll(ctx); err != nil {
		return err
	}

	j.log.Debug().Dur("duration_ms", time.Since(start)).Msg("Trade stores refreshed")
	return nil
}
