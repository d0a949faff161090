package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/repository"
)

func TestAccessService_RequirePermission(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	svc := NewAccessService(userRepo)

	userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Role: domain.RoleUser, IsActive: true}, nil)
	userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{
		ID: 2, Role: domain.RoleAdmin, IsActive: true,
		Permissions: domain.Permissions{ManageEvents: true},
	}, nil)
	userRepo.On("GetByID", ctx, int32(3)).Return(&domain.User{ID: 3, Role: domain.RoleSuperAdmin, IsActive: true}, nil)
	userRepo.On("GetByID", ctx, int32(4)).Return(nil, repository.ErrNotFound)

	t.Run("PlainUserRejected", func(t *testing.T) {
		_, err := svc.RequirePermission(ctx, 1, domain.CapManageStore)
		assert.True(t, errors.Is(err, ErrForbidden))
		assert.EqualError(t, err, "Admin access required")
	})

	t.Run("AdminWithoutFlag", func(t *testing.T) {
		_, err := svc.RequirePermission(ctx, 2, domain.CapManageStore)
		assert.True(t, errors.Is(err, ErrForbidden))
		assert.EqualError(t, err, "Permission denied: manageStore")
	})

	t.Run("AdminWithFlag", func(t *testing.T) {
		user, err := svc.RequirePermission(ctx, 2, domain.CapManageEvents)
		require.NoError(t, err)
		assert.Equal(t, int32(2), user.ID)
	})

	t.Run("SuperAdminAlwaysPasses", func(t *testing.T) {
		_, err := svc.RequirePermission(ctx, 3, domain.CapManageStore)
		assert.NoError(t, err)
	})

	t.Run("UnknownCaller", func(t *testing.T) {
		_, err := svc.RequirePermission(ctx, 4, domain.CapManageStore)
		assert.True(t, errors.Is(err, ErrForbidden))
	})
}

func TestAccessService_RequireAdmin(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	svc := NewAccessService(userRepo)

	userRepo.On("GetByID", ctx, int32(2)).Return(&domain.User{ID: 2, Role: domain.RoleAdmin, IsActive: true}, nil)
	userRepo.On("GetByID", ctx, int32(5)).Return(&domain.User{ID: 5, Role: domain.RoleAdmin, IsActive: false}, nil)

	_, err := svc.RequireAdmin(ctx, 2)
	assert.NoError(t, err)

	_, err = svc.RequireAdmin(ctx, 5)
	assert.True(t, errors.Is(err, ErrForbidden))
}
