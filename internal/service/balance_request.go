package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
)

type balanceRequestService struct {
	txManager repository.TxManager
	reqRepo   repository.BalanceRequestRepository
	userRepo  repository.UserRepository
	ledger    LedgerService
	email     EmailService
	now       func() time.Time
}

func NewBalanceRequestService(
	txManager repository.TxManager,
	reqRepo repository.BalanceRequestRepository,
	userRepo repository.UserRepository,
	ledger LedgerService,
	email EmailService,
) BalanceRequestService {
	return &balanceRequestService{
		txManager: txManager,
		reqRepo:   reqRepo,
		userRepo:  userRepo,
		ledger:    ledger,
		email:     email,
		now:       time.Now,
	}
}

func (s *balanceRequestService) RequestBalance(ctx context.Context, userID int32, amount decimal.Decimal, reason string) (*domain.BalanceRequest, error) {
	logger.EnterMethod("balanceRequestService.RequestBalance", "userID", userID, "amount", amount.String())

	if !amount.IsPositive() {
		return nil, validationError("Please provide a valid amount")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, validationError("Please provide a reason for the request")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	pending, err := s.reqRepo.HasPending(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pending {
		return nil, conflictError("You already have a pending balance request")
	}

	req := &domain.BalanceRequest{
		UserID:          user.ID,
		Username:        user.Username,
		UserEmail:       user.Email,
		UserPhone:       user.Phone,
		RequestedAmount: domain.Money(amount),
		Reason:          strings.TrimSpace(reason),
		Status:          domain.BalanceRequestPending,
	}
	if err := s.reqRepo.Create(ctx, req); err != nil {
		// The partial unique index catches a concurrent second request.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, conflictError("You already have a pending balance request")
		}
		return nil, fmt.Errorf("failed to create balance request: %w", err)
	}

	logger.ExitMethod("balanceRequestService.RequestBalance", "requestID", req.ID)
	return req, nil
}

func (s *balanceRequestService) History(ctx context.Context, userID int32) ([]domain.BalanceRequest, error) {
	reqs, err := s.reqRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance requests: %w", err)
	}
	return reqs, nil
}

func (s *balanceRequestService) ListAll(ctx context.Context) ([]domain.BalanceRequest, error) {
	reqs, err := s.reqRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance requests: %w", err)
	}
	return reqs, nil
}

// Process approves or rejects a pending request. Approval credits the requester in
// the same transaction. The outcome email is sent after commit and never fails the call.
func (s *balanceRequestService) Process(ctx context.Context, admin *domain.User, requestID int32, status domain.BalanceRequestStatus, notes string) (*domain.BalanceRequest, error) {
	logger.EnterMethod("balanceRequestService.Process", "requestID", requestID, "status", status, "admin", admin.Username)

	if status != domain.BalanceRequestApproved && status != domain.BalanceRequestRejected {
		return nil, validationError(`Invalid status. Must be "approved" or "rejected"`)
	}

	var (
		req       *domain.BalanceRequest
		requester *domain.User
	)
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		req, err = s.reqRepo.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundError("Balance request not found")
			}
			return fmt.Errorf("failed to load balance request: %w", err)
		}
		if req.Status != domain.BalanceRequestPending {
			return conflictError("Request has already been processed")
		}

		now := s.now()
		req.Status = status
		req.AdminNotes = notes
		req.ProcessedBy = admin.Username
		req.ProcessedAt = &now

		requester, err = s.userRepo.GetByIDForUpdate(ctx, req.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return notFoundError("User not found")
			}
			return fmt.Errorf("failed to load requester: %w", err)
		}

		if status == domain.BalanceRequestApproved {
			entry := LedgerEntry{
				Type:        domain.TransactionTypeBalanceAdded,
				Description: fmt.Sprintf("Balance request approved by %s", admin.Username),
				RelatedID:   &req.ID,
			}
			if err := s.ledger.Credit(ctx, requester, req.RequestedAmount, entry); err != nil {
				return err
			}
		}

		if err := s.reqRepo.Update(ctx, req); err != nil {
			return fmt.Errorf("failed to update balance request: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.ExitMethodWithError("balanceRequestService.Process", err, "requestID", requestID)
		return nil, err
	}

	if requester.Email != "" {
		if err := s.email.SendBalanceRequestOutcome(ctx, requester.Email, requester.Name, req); err != nil {
			logger.Error("Failed to send balance request outcome", "requestID", req.ID, "error", err)
		}
	}

	logger.ExitMethod("balanceRequestService.Process", "requestID", req.ID, "status", req.Status)
	return req, nil
}
