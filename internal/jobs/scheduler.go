// Package jobs runs periodic maintenance on the cron scheduler.
package jobs

import (
	"context"
	"fmt"
	"time"

	"hackswipe/internal/middleware"
	"hackswipe/internal/observability"

	"github.com/robfig/cron/v3"
)

// Job is a named unit of periodic work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler runs registered jobs on standard cron specs.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// NewScheduler returns a stopped scheduler. Each run gets at most timeout.
func NewScheduler(timeout time.Duration) *Scheduler {
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
	}
}

// Register schedules job on spec (e.g. "@hourly" or "*/15 * * * *").
func (s *Scheduler) Register(spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { s.runOnce(job) }); err != nil {
		return fmt.Errorf("schedule %s: %w", job.Name(), err)
	}
	middleware.Logger.Info("job scheduled", "job", job.Name(), "spec", spec)
	return nil
}

func (s *Scheduler) runOnce(job Job) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			observability.JobRuns.WithLabelValues(job.Name(), "panic").Inc()
			middleware.Logger.Error("job panicked", "job", job.Name(), "panic", r)
		}
	}()

	start := time.Now()
	if err := job.Run(ctx); err != nil {
		observability.JobRuns.WithLabelValues(job.Name(), "error").Inc()
		middleware.Logger.ErrorContext(ctx, "job failed", "job", job.Name(), "error", err)
		return
	}
	observability.JobRuns.WithLabelValues(job.Name(), "ok").Inc()
	middleware.Logger.DebugContext(ctx, "job finished", "job", job.Name(), "duration", time.Since(start))
}

// Start begins running jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop cancels in-flight runs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}

// Len reports how many jobs are registered.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}
