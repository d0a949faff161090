package service

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
	"society-management-backend/internal/utils"
)

type BalanceOperation string

const (
	BalanceOperationSet BalanceOperation = "set"
	BalanceOperationAdd BalanceOperation = "add"
)

// UserDetailsPatch leaves empty fields untouched.
type UserDetailsPatch struct {
	Name        string
	Phone       string
	Email       string
	MarlaSize   int
	HouseChoice string
}

type adminUserService struct {
	txManager repository.TxManager
	userRepo  repository.UserRepository
	ledger    LedgerService
}

func NewAdminUserService(txManager repository.TxManager, userRepo repository.UserRepository, ledger LedgerService) AdminUserService {
	return &adminUserService{
		txManager: txManager,
		userRepo:  userRepo,
		ledger:    ledger,
	}
}

func (s *adminUserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// UpdateRole sets the role and merges the given permission flags. Granting super_admin,
// or touching an existing super_admin, needs a super_admin actor.
func (s *adminUserService) UpdateRole(ctx context.Context, actor *domain.User, userID int32, role domain.Role, patch *domain.PermissionsPatch) (*domain.User, error) {
	logger.EnterMethod("adminUserService.UpdateRole", "actor", actor.ID, "userID", userID, "role", role)

	if !role.Valid() {
		return nil, validationError(fmt.Sprintf("Invalid role: %s", role))
	}

	var user *domain.User
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.loadForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if (role == domain.RoleSuperAdmin || user.Role == domain.RoleSuperAdmin) && actor.Role != domain.RoleSuperAdmin {
			return forbiddenError("Super admin access required")
		}

		user.Role = role
		if patch != nil {
			user.Permissions.Merge(*patch)
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Audit("update_role", actor.ID, "target", userID, "role", role)
	return user, nil
}

func (s *adminUserService) SetActive(ctx context.Context, userID int32, active bool) error {
	return s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		user, err := s.loadForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		user.IsActive = active
		if err := s.userRepo.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		logger.Info("User active flag changed", "userID", userID, "active", active)
		return nil
	})
}

// UpdateBalance sets or adds to a user's balance. The result may not go below zero.
func (s *adminUserService) UpdateBalance(ctx context.Context, actor *domain.User, userID int32, op BalanceOperation, amount decimal.Decimal) (*domain.User, error) {
	logger.EnterMethod("adminUserService.UpdateBalance", "actor", actor.ID, "userID", userID, "op", op, "amount", amount.String())

	if op == "" {
		op = BalanceOperationSet
	}
	if op != BalanceOperationSet && op != BalanceOperationAdd {
		return nil, validationError(`Invalid operation. Must be "set" or "add"`)
	}

	var user *domain.User
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.loadForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		target := amount
		if op == BalanceOperationAdd {
			target = user.Balance.Add(amount)
		}
		if target.IsNegative() {
			return validationError("Balance cannot be negative").
				With("currentBalance", user.Balance)
		}

		entry := LedgerEntry{
			Type:        domain.TransactionTypeBalanceAdded,
			Description: fmt.Sprintf("Balance %s by %s", op, actor.Username),
		}
		return s.ledger.Set(ctx, user, target, entry)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *adminUserService) UpdateDetails(ctx context.Context, userID int32, in UserDetailsPatch) (*domain.User, error) {
	if in.MarlaSize != 0 && !slices.Contains(utils.SupportedHouseSizes(), in.MarlaSize) {
		return nil, validationError(fmt.Sprintf("House size must be one of %v marla", utils.SupportedHouseSizes()))
	}

	var user *domain.User
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.loadForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		if in.Name != "" {
			user.Name = in.Name
		}
		if in.Phone != "" {
			user.Phone = in.Phone
		}
		if in.Email != "" {
			user.Email = in.Email
		}
		if in.MarlaSize != 0 {
			user.House.MarlaSize = in.MarlaSize
		}
		if in.HouseChoice != "" {
			user.House.Choice = in.HouseChoice
		}

		if err := s.userRepo.Update(ctx, user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *adminUserService) loadForUpdate(ctx context.Context, userID int32) (*domain.User, error) {
	user, err := s.userRepo.GetByIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
