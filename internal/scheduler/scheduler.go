package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/feral-file/give-gateway/internal/adapter"
	"github.com/feral-file/give-gateway/internal/logger"
)

// MinDelay is the shortest delay a job can be scheduled with
const MinDelay = time.Second

var ErrEmptyJobName = errors.New("job name is required")

// Job is the work run when a schedule fires
type Job func(ctx context.Context)

// Scheduler runs named one-shot jobs in the background.
// Scheduling a name that is already pending replaces the pending job.
//
//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler.go -package=mocks -mock_names=Scheduler=MockScheduler
type Scheduler interface {
	// Schedule runs job once after delay
	Schedule(name string, delay time.Duration, job Job) error

	// Cancel drops the pending job with name, if any
	Cancel(name string)

	// Scheduled reports whether a job with name is pending
	Scheduled(name string) bool

	// Start begins running due jobs
	Start(ctx context.Context) error

	// Stop stops the scheduler and waits for running jobs to finish
	Stop(ctx context.Context) error

	// Name returns the scheduler's name for logging and identification
	Name() string
}

// onceSchedule fires a single time at at
type onceSchedule struct {
	at time.Time
}

// Next returns at until it has passed, then the zero time so cron never runs the entry again
func (s onceSchedule) Next(t time.Time) time.Time {
	if t.Before(s.at) {
		return s.at
	}
	return time.Time{}
}

type cronScheduler struct {
	cron  *cron.Cron
	chain cron.Chain
	clock adapter.Clock

	mu   sync.Mutex
	jobs map[string]cron.EntryID
	ctx  context.Context
}

// New creates a cron backed scheduler
func New(clock adapter.Clock) Scheduler {
	cronLogger := NewZapLoggerAdapter(logger.Default())
	return &cronScheduler{
		cron:  cron.New(cron.WithLogger(cronLogger)),
		chain: cron.NewChain(cron.Recover(cronLogger)),
		clock: clock,
		jobs:  make(map[string]cron.EntryID),
		ctx:   context.Background(),
	}
}

func (s *cronScheduler) Name() string {
	return "cron-scheduler"
}

func (s *cronScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	s.ctx = ctx
	s.mu.Unlock()

	s.cron.Start()
	logger.InfoCtx(ctx, "Scheduler started")
	return nil
}

func (s *cronScheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()

	select {
	case <-done.Done():
		logger.InfoCtx(ctx, "Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *cronScheduler) Schedule(name string, delay time.Duration, job Job) error {
	if name == "" {
		return ErrEmptyJobName
	}
	if delay < MinDelay {
		delay = MinDelay
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.jobs[name]; ok {
		s.cron.Remove(id)
		delete(s.jobs, name)
	}

	at := s.clock.Now().Add(delay)
	var id cron.EntryID
	id = s.cron.Schedule(onceSchedule{at: at}, s.chain.Then(cron.FuncJob(func() {
		ctx, ok := s.release(name, &id)
		if !ok {
			return
		}

		logger.InfoCtx(ctx, "Running scheduled job", zap.String("name", name))
		job(ctx)
	})))
	s.jobs[name] = id

	logger.Info("Job scheduled",
		zap.String("name", name),
		zap.Time("at", at),
		zap.Int("entry_id", int(id)))

	return nil
}

func (s *cronScheduler) Cancel(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.jobs[name]
	if !ok {
		return
	}
	s.cron.Remove(id)
	delete(s.jobs, name)

	logger.Info("Job cancelled", zap.String("name", name))
}

func (s *cronScheduler) Scheduled(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.jobs[name]
	return ok
}

// release forgets a fired entry and returns the context jobs run with.
// It reports false when the entry was replaced or cancelled meanwhile.
// id is read under the lock because Schedule assigns it after registering the entry.
func (s *cronScheduler) release(name string, id *cron.EntryID) (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.jobs[name]
	if !ok || current != *id {
		return nil, false
	}
	delete(s.jobs, name)
	s.cron.Remove(current)
	return s.ctx, true
}
