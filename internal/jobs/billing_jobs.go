package jobs

import (
	"context"

	"society-management-backend/internal/logger"
)

const (
	JobGenerateMonthlyBills = "generate-monthly-bills"
	JobSendBillReminders    = "send-bill-reminders"
	JobNotifyLowStock       = "notify-low-stock"
)

// GenerateMonthlyBills creates the current month's bills for every active resident.
// Residents who already have them are untouched.
func (jr *JobRunner) GenerateMonthlyBills() error {
	return jr.runWithRecovery(JobGenerateMonthlyBills, func(ctx context.Context) (int, error) {
		result, err := jr.services.Bill.GenerateForAll(ctx)
		if err != nil {
			return 0, err
		}
		if result.Skipped > 0 {
			logger.Warn("Residents skipped during bill generation", "skipped", result.Skipped)
		}
		return result.Count, nil
	})
}

// SendBillReminders emails residents with unpaid bills past the due day
func (jr *JobRunner) SendBillReminders() error {
	return jr.runWithRecovery(JobSendBillReminders, func(ctx context.Context) (int, error) {
		return jr.services.Bill.SendOverdueReminders(ctx)
	})
}

// NotifyLowStock emails the store admin the products at or below their minimum stock
func (jr *JobRunner) NotifyLowStock() error {
	return jr.runWithRecovery(JobNotifyLowStock, func(ctx context.Context) (int, error) {
		return jr.services.Store.NotifyLowStock(ctx)
	})
}
