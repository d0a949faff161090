package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
)

const transactionHistoryLimit = 50

// LedgerEntry describes why a balance changes.
type LedgerEntry struct {
	Type        domain.TransactionType
	Description string
	RelatedID   *int32
	// Audited entries always leave a transaction record.
	Audited bool
}

type ledgerService struct {
	userRepo     repository.UserRepository
	txRepo       repository.TransactionRepository
	auditAllFlow bool
}

func NewLedgerService(userRepo repository.UserRepository, txRepo repository.TransactionRepository, auditAllFlows bool) LedgerService {
	return &ledgerService{
		userRepo:     userRepo,
		txRepo:       txRepo,
		auditAllFlow: auditAllFlows,
	}
}

// Debit must run inside a transaction holding the user's row lock.
func (s *ledgerService) Debit(ctx context.Context, user *domain.User, amount decimal.Decimal, entry LedgerEntry) error {
	if user.Balance.LessThan(amount) {
		return newError(ErrInsufficientFunds, "Insufficient balance").
			With("requiredAmount", amount).
			With("currentBalance", user.Balance)
	}
	return s.apply(ctx, user, user.Balance.Sub(amount), amount, entry)
}

// Credit must run inside a transaction holding the user's row lock.
func (s *ledgerService) Credit(ctx context.Context, user *domain.User, amount decimal.Decimal, entry LedgerEntry) error {
	return s.apply(ctx, user, user.Balance.Add(amount), amount, entry)
}

// Set replaces the balance outright. The recorded amount is the absolute change.
func (s *ledgerService) Set(ctx context.Context, user *domain.User, balance decimal.Decimal, entry LedgerEntry) error {
	return s.apply(ctx, user, balance, balance.Sub(user.Balance).Abs(), entry)
}

func (s *ledgerService) apply(ctx context.Context, user *domain.User, after, amount decimal.Decimal, entry LedgerEntry) error {
	before := user.Balance
	after = domain.Money(after)

	if err := s.userRepo.UpdateBalance(ctx, user.ID, after); err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}
	user.Balance = after

	logger.Audit(string(entry.Type), user.ID, "before", before.String(), "after", after.String(), "amount", amount.String())

	if !entry.Audited && !s.auditAllFlow {
		return nil
	}

	record := &domain.Transaction{
		UserID:        user.ID,
		Username:      user.Username,
		Type:          entry.Type,
		Amount:        domain.Money(amount),
		Description:   entry.Description,
		RelatedID:     entry.RelatedID,
		BalanceBefore: before,
		BalanceAfter:  after,
		Status:        domain.TransactionStatusCompleted,
	}
	if err := s.txRepo.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}
	return nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, userID int32) ([]domain.Transaction, error) {
	txs, err := s.txRepo.ListByUser(ctx, userID, transactionHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}
