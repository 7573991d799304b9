package commerce

import (
	"time"

	"github.com/feral-file/give-gateway/internal/metrics"
	"github.com/feral-file/give-gateway/internal/scheduler"
)

const (
	refreshMargin     = 30 * time.Minute
	minRefreshDelay   = time.Minute
	refreshRetryDelay = 15 * time.Minute
)

// RefreshDelay is when to refresh a token that expires in expiresIn seconds
func RefreshDelay(expiresIn int64) time.Duration {
	delay := time.Duration(expiresIn)*time.Second - refreshMargin
	if delay < minRefreshDelay {
		return minRefreshDelay
	}
	return delay
}

// TokenRefresher keeps one pending access token refresh on the scheduler
type TokenRefresher struct {
	scheduler scheduler.Scheduler
}

// NewTokenRefresher creates a TokenRefresher
func NewTokenRefresher(s scheduler.Scheduler) *TokenRefresher {
	return &TokenRefresher{scheduler: s}
}

// Register replaces any pending refresh with one due before the token expires
func (t *TokenRefresher) Register(expiresIn int64, job scheduler.Job) error {
	return t.schedule(RefreshDelay(expiresIn), job)
}

// Retry schedules another attempt after a failed refresh
func (t *TokenRefresher) Retry(job scheduler.Job) error {
	return t.schedule(refreshRetryDelay, job)
}

// Cancel drops the pending refresh
func (t *TokenRefresher) Cancel() {
	t.scheduler.Cancel(RefreshTokenJobName)
	metrics.TokenRefreshScheduled.Set(0)
}

// Pending reports whether a refresh is scheduled
func (t *TokenRefresher) Pending() bool {
	return t.scheduler.Scheduled(RefreshTokenJobName)
}

func (t *TokenRefresher) schedule(delay time.Duration, job scheduler.Job) error {
	if err := t.scheduler.Schedule(RefreshTokenJobName, delay, job); err != nil {
		return err
	}
	metrics.TokenRefreshScheduled.Set(1)
	return nil
}
