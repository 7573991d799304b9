package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/give-gateway/internal/adapter"
	"github.com/feral-file/give-gateway/internal/logger"
)

// maxLocalKeys bounds the per-process limiter table; it is reset when full
const maxLocalKeys = 10000

// Result is the outcome of a rate limit check
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Config holds the per-key limit
type Config struct {
	RequestsPerMinute int
	Burst             int
	KeyPrefix         string
}

// Limiter decides whether a request identified by key may proceed
//
//go:generate mockgen -source=limiter.go -destination=../mocks/ratelimit_limiter.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// limiter checks the distributed limit in Redis and falls back to a
// per-process token bucket when Redis is not configured or failing
type limiter struct {
	config      Config
	distributed adapter.RedisRateLimiter
	clock       adapter.Clock

	mu    sync.Mutex
	local map[string]*rate.Limiter

	redisAvailable atomic.Bool
}

// New creates a Limiter. distributed may be nil for a purely local limiter.
func New(cfg Config, distributed adapter.RedisRateLimiter, clock adapter.Clock) Limiter {
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerMinute
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "give_gateway:limiter:"
	}

	l := &limiter{
		config:      cfg,
		distributed: distributed,
		clock:       clock,
		local:       make(map[string]*rate.Limiter),
	}
	l.redisAvailable.Store(distributed != nil)
	return l
}

// Allow takes one token for key
func (l *limiter) Allow(ctx context.Context, key string) (Result, error) {
	if l.redisAvailable.Load() {
		res, err := l.distributed.Allow(ctx, l.config.KeyPrefix+key, redis_rate.Limit{
			Rate:   l.config.RequestsPerMinute,
			Burst:  l.config.Burst,
			Period: time.Minute,
		})
		if err == nil {
			return Result{
				Allowed:    res.Allowed > 0,
				Remaining:  res.Remaining,
				RetryAfter: res.RetryAfter,
			}, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}

		// Stay on the local limiter for this process; Redis errors are not retried per request
		l.redisAvailable.Store(false)
		logger.WarnCtx(ctx, "Redis rate limiter error, falling back to local", zap.Error(err))
	}

	return l.allowLocal(key), nil
}

func (l *limiter) allowLocal(key string) Result {
	now := l.clock.Now()
	bucket := l.bucket(key)

	reservation := bucket.ReserveN(now, 1)
	if !reservation.OK() {
		return Result{Allowed: false}
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return Result{Allowed: false, RetryAfter: delay}
	}
	return Result{Allowed: true, Remaining: int(bucket.TokensAt(now))}
}

func (l *limiter) bucket(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b, ok := l.local[key]; ok {
		return b
	}
	if len(l.local) >= maxLocalKeys {
		l.local = make(map[string]*rate.Limiter)
	}

	every := rate.Every(time.Minute / time.Duration(max(l.config.RequestsPerMinute, 1)))
	b := rate.NewLimiter(every, l.config.Burst)
	l.local[key] = b
	return b
}
