package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
	"society-management-backend/internal/utils"
)

// BillPayment is the outcome of a successful bill payment.
type BillPayment struct {
	Bill             *domain.Bill
	PaidAmount       decimal.Decimal
	Penalty          decimal.Decimal
	RemainingBalance decimal.Decimal
}

// BulkGeneration summarises a generate-for-all run.
type BulkGeneration struct {
	Count   int
	Skipped int
}

type billService struct {
	txManager repository.TxManager
	billRepo  repository.BillRepository
	userRepo  repository.UserRepository
	ledger    LedgerService
	email     EmailService
	policy    utils.BillingPolicy
	now       func() time.Time
}

func NewBillService(
	txManager repository.TxManager,
	billRepo repository.BillRepository,
	userRepo repository.UserRepository,
	ledger LedgerService,
	email EmailService,
	policy utils.BillingPolicy,
) BillService {
	return &billService{
		txManager: txManager,
		billRepo:  billRepo,
		userRepo:  userRepo,
		ledger:    ledger,
		email:     email,
		policy:    policy,
		now:       time.Now,
	}
}

func (s *billService) GenerateOrFetch(ctx context.Context, userID int32) ([]domain.Bill, error) {
	logger.EnterMethod("billService.GenerateOrFetch", "userID", userID)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	now := s.now()
	month := domain.BillingMonth(now)

	bills, err := s.billRepo.ListByUserAndMonth(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	if len(bills) > 0 {
		logger.ExitMethod("billService.GenerateOrFetch", "userID", userID, "generated", false)
		return bills, nil
	}

	if _, err := s.createMonthlyBills(ctx, user, now); err != nil {
		return nil, err
	}

	bills, err = s.billRepo.ListByUserAndMonth(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	logger.ExitMethod("billService.GenerateOrFetch", "userID", userID, "generated", true)
	return bills, nil
}

// createMonthlyBills inserts the month's electricity and gas bills for user in one
// transaction. Bills that already exist are left alone. Returns how many were inserted.
func (s *billService) createMonthlyBills(ctx context.Context, user *domain.User, now time.Time) (int, error) {
	amount, err := utils.TierAmount(user.House.MarlaSize)
	if err != nil {
		return 0, validationError(fmt.Sprintf("Unsupported house size: %d marla", user.House.MarlaSize)).
			With("supportedSizes", utils.SupportedHouseSizes())
	}

	month := domain.BillingMonth(now)
	due := s.policy.DueDate(now)
	created := 0

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		for _, billType := range domain.MonthlyBillTypes {
			bill := &domain.Bill{
				UserID:       user.ID,
				Username:     user.Username,
				BillType:     billType,
				Amount:       amount,
				BillingMonth: month,
				DueDate:      due,
				Penalty:      decimal.Zero,
			}
			inserted, err := s.billRepo.CreateIfAbsent(ctx, bill)
			if err != nil {
				return fmt.Errorf("failed to create %s bill: %w", billType, err)
			}
			if inserted {
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (s *billService) ListBills(ctx context.Context, userID int32, month string) ([]domain.Bill, error) {
	if month != "" {
		if _, err := utils.ParseBillingMonth(month, time.UTC); err != nil {
			return nil, validationError(err.Error())
		}
		bills, err := s.billRepo.ListByUserAndMonth(ctx, userID, month)
		if err != nil {
			return nil, fmt.Errorf("failed to list bills: %w", err)
		}
		return bills, nil
	}

	bills, err := s.billRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

func (s *billService) PayBill(ctx context.Context, userID, billID int32) (*BillPayment, error) {
	logger.EnterMethod("billService.PayBill", "userID", userID, "billID", billID)

	var result *BillPayment
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		bill, err := s.billRepo.GetByIDForUpdate(ctx, billID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundError("Bill not found")
			}
			return fmt.Errorf("failed to load bill: %w", err)
		}
		if bill.UserID != userID {
			return notFoundError("Bill not found")
		}
		if bill.IsPaid {
			return conflictError("Bill already paid")
		}

		user, err := s.userRepo.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}

		now := s.now()
		penalty := s.policy.Penalty(bill.DueDate, now)
		total := bill.Amount.Add(penalty)

		entry := LedgerEntry{
			Type:        domain.TransactionTypeBillPayment,
			Description: fmt.Sprintf("Bill payment: %s %s", bill.BillType, bill.BillingMonth),
			RelatedID:   &bill.ID,
		}
		if err := s.ledger.Debit(ctx, user, total, entry); err != nil {
			return err
		}

		if err := s.billRepo.MarkPaid(ctx, bill.ID, now, penalty); err != nil {
			return fmt.Errorf("failed to mark bill paid: %w", err)
		}
		bill.IsPaid = true
		bill.PaidAt = &now
		bill.Penalty = penalty

		result = &BillPayment{
			Bill:             bill,
			PaidAmount:       total,
			Penalty:          penalty,
			RemainingBalance: user.Balance,
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("billService.PayBill", err, "billID", billID)
		return nil, err
	}

	logger.ExitMethod("billService.PayBill", "billID", billID, "paid", result.PaidAmount.String())
	return result, nil
}

func (s *billService) GenerateForAll(ctx context.Context) (*BulkGeneration, error) {
	logger.EnterMethod("billService.GenerateForAll")

	users, err := s.userRepo.ListActiveResidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}

	now := s.now()
	result := &BulkGeneration{}
	for i := range users {
		user := &users[i]
		n, err := s.createMonthlyBills(ctx, user, now)
		if err != nil {
			if errors.Is(err, ErrValidation) {
				logger.Warn("Skipping bill generation", "userID", user.ID, "marlaSize", user.House.MarlaSize)
				result.Skipped++
				continue
			}
			return nil, err
		}
		result.Count += n
	}

	logger.ExitMethod("billService.GenerateForAll", "count", result.Count, "skipped", result.Skipped)
	return result, nil
}

// SendOverdueReminders emails every holder of an unpaid, overdue bill for the current month.
func (s *billService) SendOverdueReminders(ctx context.Context) (int, error) {
	now := s.now()
	bills, err := s.billRepo.ListUnpaidOverdue(ctx, domain.BillingMonth(now), now)
	if err != nil {
		return 0, fmt.Errorf("failed to list overdue bills: %w", err)
	}

	users := make(map[int32]*domain.User)
	sent := 0
	for i := range bills {
		bill := &bills[i]
		user, ok := users[bill.UserID]
		if !ok {
			user, err = s.userRepo.GetByID(ctx, bill.UserID)
			if err != nil {
				logger.Error("Failed to load bill holder", "userID", bill.UserID, "error", err)
				continue
			}
			users[bill.UserID] = user
		}
		if user.Email == "" {
			continue
		}

		penalty := s.policy.Penalty(bill.DueDate, now)
		if err := s.email.SendBillReminder(ctx, user.Email, user.Name, bill, penalty); err != nil {
			logger.Error("Failed to send bill reminder", "billID", bill.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}
