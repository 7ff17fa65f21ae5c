package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is a named unit of periodic work.
type Job struct {
	Name     string
	Schedule string
	Run      func(ctx context.Context) error
}

// Scheduler runs Jobs on cron schedules. Each run gets its own timeout,
// is logged and recorded in WorkerMetrics. A run still in progress when its
// next tick fires causes that tick to be skipped.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	metrics *WorkerMetrics
	logger  *slog.Logger
	baseCtx context.Context
}

// NewScheduler creates a scheduler evaluating schedules in loc.
func NewScheduler(loc *time.Location, timeout time.Duration, metrics *WorkerMetrics, logger *slog.Logger) *Scheduler {
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	return &Scheduler{
		cron:    c,
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
		baseCtx: context.Background(),
	}
}

// Add registers job. It fails on an unparsable schedule.
func (s *Scheduler) Add(job Job) error {
	_, err := s.cron.AddFunc(job.Schedule, func() {
		_ = s.RunOnce(s.baseCtx, job)
	})
	if err != nil {
		return fmt.Errorf("schedule %s: %w", job.Name, err)
	}
	s.logger.Info("job scheduled",
		slog.String("job", job.Name),
		slog.String("schedule", job.Schedule))
	return nil
}

// RunOnce executes job immediately under the scheduler's timeout.
func (s *Scheduler) RunOnce(ctx context.Context, job Job) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	s.logger.Info("job started", slog.String("job", job.Name))

	err := job.Run(ctx)
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.RecordJobRun(job.Name, StatusFailure, elapsed.Seconds())
		s.logger.Error("job failed",
			slog.String("job", job.Name),
			slog.Duration("duration", elapsed),
			slog.Any("error", err))
		return err
	}

	s.metrics.RecordJobRun(job.Name, StatusSuccess, elapsed.Seconds())
	s.logger.Info("job completed",
		slog.String("job", job.Name),
		slog.Duration("duration", elapsed))
	return nil
}

// Run starts the cron loop and blocks until ctx is cancelled. It then stops
// scheduling and waits for running jobs to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	s.baseCtx = ctx
	s.cron.Start()
	<-ctx.Done()

	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
	return nil
}

// Entries returns the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
