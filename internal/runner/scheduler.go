package runner

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler triggers the daily pipeline run on a cron expression.
type Scheduler struct {
	Cron   *cron.Cron
	Runner *Runner
	Ctx    context.Context
	Log    *logrus.Logger
}

// NewScheduler creates a Scheduler. Cron expressions include a seconds field.
func NewScheduler(ctx context.Context, r *Runner, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		Cron:   cron.New(cron.WithSeconds()),
		Runner: r,
		Ctx:    ctx,
		Log:    log,
	}
}

// Register schedules the daily run.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Info("scheduler started")
}

// Stop stops the cron scheduler.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Log.Info("scheduler stopped")
}

// RunNow executes the daily task immediately, for manual trigger or
// run-on-start.
func (s *Scheduler) RunNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	if err := s.Runner.RunDaily(s.Ctx); err != nil {
		s.Log.Errorf("daily run failed: %v", err)
	}
}
