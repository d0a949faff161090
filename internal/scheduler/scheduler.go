package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"society-management-backend/internal/config"
	"society-management-backend/internal/jobs"
	"society-management-backend/internal/logger"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

// NewScheduler registers the billing and store jobs. A bad cron expression is
// an error rather than a silently missing job.
func NewScheduler(jobRunner *jobs.JobRunner, cfg config.SchedulerConfig) (*Scheduler, error) {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}

	entries := []struct {
		name string
		spec string
		run  func() error
	}{
		{jobs.JobGenerateMonthlyBills, cfg.GenerateMonthlyBills, jobRunner.GenerateMonthlyBills},
		{jobs.JobSendBillReminders, cfg.SendBillReminders, jobRunner.SendBillReminders},
		{jobs.JobNotifyLowStock, cfg.NotifyLowStock, jobRunner.NotifyLowStock},
	}
	for _, e := range entries {
		run := e.run
		if _, err := s.cron.AddFunc(e.spec, func() { _ = run() }); err != nil {
			return nil, fmt.Errorf("register %s (%q): %w", e.name, e.spec, err)
		}
		logger.Info("Registered cron job", "job", e.name, "schedule", e.spec)
	}

	return s, nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
