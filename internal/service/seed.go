package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
)

type SuperAdminSeed struct {
	Username string
	Password string
	Name     string
	Phone    string
	Email    string
}

// SeedSuperAdmin creates a super admin holding every permission unless one
// already exists. Reports whether an account was created.
func SeedSuperAdmin(ctx context.Context, userRepo repository.UserRepository, in SuperAdminSeed) (bool, error) {
	exists, err := userRepo.ExistsWithRole(ctx, domain.RoleSuperAdmin)
	if err != nil {
		return false, fmt.Errorf("failed to check for super admin: %w", err)
	}
	if exists {
		logger.Info("Super admin already exists, nothing to do")
		return false, nil
	}
	if len(in.Password) < minPasswordLength {
		return false, validationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		Balance:      decimal.Zero,
		House:        domain.House{MarlaSize: 5},
		Role:         domain.RoleSuperAdmin,
		Permissions:  domain.AllPermissions(),
		IsActive:     true,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return false, fmt.Errorf("failed to create super admin: %w", err)
	}

	logger.Audit("super_admin_created", user.ID, "username", user.Username)
	return true, nil
}
