package service

import (
	"context"
	"errors"
	"fmt"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
)

type accessService struct {
	userRepo repository.UserRepository
}

func NewAccessService(userRepo repository.UserRepository) AccessService {
	return &accessService{userRepo: userRepo}
}

func (s *accessService) RequireAdmin(ctx context.Context, userID int32) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, forbiddenError("Admin access required")
		}
		return nil, fmt.Errorf("failed to load caller: %w", err)
	}
	if !user.IsActive || !user.IsAdmin() {
		logger.Warn("Admin access denied", "userID", userID, "role", user.Role)
		return nil, forbiddenError("Admin access required")
	}
	return user, nil
}

// RequirePermission passes super admins unconditionally. Admins need the flag.
func (s *accessService) RequirePermission(ctx context.Context, userID int32, capability domain.Capability) (*domain.User, error) {
	user, err := s.RequireAdmin(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleSuperAdmin {
		return user, nil
	}
	if !user.Permissions.Has(capability) {
		logger.Warn("Permission denied", "userID", userID, "capability", capability)
		return nil, forbiddenError(fmt.Sprintf("Permission denied: %s", capability))
	}
	return user, nil
}
