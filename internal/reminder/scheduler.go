package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Scheduler runs a Checker every day at a fixed time of day.
type Scheduler struct {
	scheduler *gocron.Scheduler
	job       *gocron.Job
	checker   *Checker
	logger    *slog.Logger
}

// NewScheduler schedules checker daily at at ("15:04") in the checker's timezone.
func NewScheduler(ctx context.Context, checker *Checker, at string) (*Scheduler, error) {
	s := &Scheduler{
		scheduler: gocron.NewScheduler(checker.location),
		checker:   checker,
		logger:    checker.logger,
	}
	s.scheduler.SingletonModeAll()

	job, err := s.scheduler.Every(1).Day().At(at).Do(s.run, ctx)
	if err != nil {
		return nil, fmt.Errorf("scheduler.Do(%s) > %w", at, err)
	}
	s.job = job
	return s, nil
}

func (s *Scheduler) run(ctx context.Context) {
	if _, _, err := s.checker.Check(ctx); err != nil {
		s.logger.Error("reminder check failed", slog.Any("error", err))
	}
}

// Start begins running the job without blocking.
func (s *Scheduler) Start() {
	s.scheduler.StartAsync()
	s.logger.Info("reminder scheduler started", slog.Time("next_run", s.job.NextRun()))
}

// Stop terminates the job. It is safe to call from a shutdown hook.
func (s *Scheduler) Stop(context.Context) error {
	s.scheduler.Stop()
	return nil
}

// NextRun returns when the next reminder check is scheduled.
func (s *Scheduler) NextRun() time.Time {
	return s.job.NextRun()
}
