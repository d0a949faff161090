package jobs

import (
	"context"
	"fmt"
	"time"

	"society-management-backend/internal/logger"
	"society-management-backend/internal/metrics"
	"society-management-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	services *Services
	metrics  *metrics.Metrics
	locker   Locker
	timeout  time.Duration
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Bill  service.BillService
	Store service.StoreService
}

// NewJobRunner creates a job runner. metrics and locker may be nil.
func NewJobRunner(services *Services, m *metrics.Metrics, locker Locker, timeout time.Duration) *JobRunner {
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	return &JobRunner{
		services: services,
		metrics:  m,
		locker:   locker,
		timeout:  timeout,
	}
}

// runWithRecovery runs one job under the distributed lock, recovers panics and
// records the outcome.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context) (int, error)) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), jr.timeout)
	defer cancel()

	if jr.locker != nil {
		release, acquired, lockErr := jr.locker.Acquire(ctx, jobName)
		if lockErr != nil {
			logger.Error("Failed to acquire job lock", "job", jobName, "error", lockErr)
			return lockErr
		}
		if !acquired {
			logger.Info("Job already running elsewhere, skipping", "job", jobName)
			return nil
		}
		defer release()
	}

	start := time.Now()
	items := 0
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
			err = fmt.Errorf("job %s panicked: %v", jobName, r)
		}
		jr.metrics.JobDone(jobName, start, items, err)
	}()

	logger.Info("Starting job", "job", jobName)
	items, err = jobFunc(ctx)
	if err != nil {
		logger.Error("Job failed", "job", jobName, "error", err)
		return err
	}
	logger.Info("Job completed", "job", jobName, "items", items, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

// RunAll runs every job once, in schedule order. Used by the -run-once flag.
func (jr *JobRunner) RunAll() error {
	var firstErr error
	for _, job := range []func() error{jr.GenerateMonthlyBills, jr.SendBillReminders, jr.NotifyLowStock} {
		if err := job(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
