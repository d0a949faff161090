package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/repository"
)

func newAdminFixture() (AdminUserService, *MockUserRepo) {
	userRepo := new(MockUserRepo)
	ledger := NewLedgerService(userRepo, new(MockTransactionRepo), false)
	return NewAdminUserService(&fakeTx{}, userRepo, ledger), userRepo
}

func TestAdminUserService_UpdateRole(t *testing.T) {
	ctx := context.Background()
	admin := &domain.User{ID: 50, Role: domain.RoleAdmin, Permissions: domain.Permissions{ManageUsers: true}}
	super := &domain.User{ID: 60, Role: domain.RoleSuperAdmin}

	t.Run("MergesPermissions", func(t *testing.T) {
		svc, userRepo := newAdminFixture()
		target := &domain.User{ID: 1, Role: domain.RoleUser, Permissions: domain.Permissions{ViewReports: true}}
		userRepo.On("GetByIDForUpdate", ctx, int32(1)).Return(target, nil)
		userRepo.On("Update", ctx, target).Return(nil)

		grant := true
		user, err := svc.UpdateRole(ctx, admin, 1, domain.RoleAdmin, &domain.PermissionsPatch{ManageStore: &grant})
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, user.Role)
		assert.True(t, user.Permissions.ManageStore)
		assert.True(t, user.Permissions.ViewReports)
	})

	t.Run("AdminCannotGrantSuperAdmin", func(t *testing.T) {
		svc, userRepo := newAdminFixture()
		userRepo.On("GetByIDForUpdate", ctx, int32(1)).Return(&domain.User{ID: 1, Role: domain.RoleUser}, nil)

		_, err := svc.UpdateRole(ctx, admin, 1, domain.RoleSuperAdmin, nil)
		assert.True(t, errors.Is(err, ErrForbidden))
		userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("AdminCannotDemoteSuperAdmin", func(t *testing.T) {
		svc, userRepo := newAdminFixture()
		userRepo.On("GetByIDForUpdate", ctx, int32(60)).Return(&domain.User{ID: 60, Role: domain.RoleSuperAdmin}, nil)

		_, err := svc.UpdateRole(ctx, admin, 60, domain.RoleUser, nil)
		assert.EqualError(t, err, "Super admin access required")
	})

	t.Run("SuperAdminMayGrant", func(t *testing.T) {
		svc, userRepo := newAdminFixture()
		target := &domain.User{ID: 1, Role: domain.RoleAdmin}
		userRepo.On("GetByIDForUpdate", ctx, int32(1)).Return(target, nil)
		userRepo.On("Update", ctx, target).Return(nil)

		user, err := svc.UpdateRole(ctx, super, 1, domain.RoleSuperAdmin, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleSuperAdmin, user.Role)
	})

	t.Run("InvalidRole", func(t *testing.T) {
		svc, _ := newAdminFixture()
		_, err := svc.UpdateRole(ctx, super, 1, domain.Role("owner"), nil)
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestAdminUserService_UpdateBalance(t *testing.T) {
	ctx := context.Background()
	actor := &domain.User{ID: 60, Username: "superadmin", Role: domain.RoleSuperAdmin}

	t.Run("Add", func(t *testing.T) {
		svc, userRepo := newAdminFixture()
		userRepo.On("GetByIDForUpdate", ctx, int32(1)).Return(&domain.User{ID: 1, Balance: dec("100")}, nil)
		userRepo.On("UpdateBalance", ctx, int32(1), decEq("350")).Return(nil)

		user, err := svc.UpdateBalance(ctx, actor, 1, BalanceOperationAdd, dec("250"))
		require.NoError(t, err)
		assert.True(t, user.Balance.Equal(dec("350")))
	})

	t.Run("Set", func(t *testing.T) {
		svc, userRepo := newAdminFixture()
		userRepo.On("GetByIDForUpdate", ctx, int32(1)).Return(&domain.User{ID: 1, Balance: dec("100")}, nil)
		userRepo.On("UpdateBalance", ctx, int32(1), decEq("40")).Return(nil)

		user, err := svc.UpdateBalance(ctx, actor, 1, BalanceOperationSet, dec("40"))
		require.NoError(t, err)
		assert.True(t, user.Balance.Equal(dec("40")))
	})

	t.Run("NegativeResult", func(t *testing.T) {
		svc, userRepo := newAdminFixture()
		userRepo.On("GetByIDForUpdate", ctx, int32(1)).Return(&domain.User{ID: 1, Balance: dec("100")}, nil)

		_, err := svc.UpdateBalance(ctx, actor, 1, BalanceOperationAdd, dec("-150"))
		assert.True(t, errors.Is(err, ErrValidation))
		userRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownOperation", func(t *testing.T) {
		svc, _ := newAdminFixture()
		_, err := svc.UpdateBalance(ctx, actor, 1, BalanceOperation("multiply"), dec("2"))
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestAdminUserService_UpdateDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("OnlyNonEmptyFields", func(t *testing.T) {
		svc, userRepo := newAdminFixture()
		target := &domain.User{ID: 1, Name: "Ali", Phone: "0300", Email: "a@x.com", House: domain.House{MarlaSize: 5, Choice: "A"}}
		userRepo.On("GetByIDForUpdate", ctx, int32(1)).Return(target, nil)
		userRepo.On("Update", ctx, target).Return(nil)

		user, err := svc.UpdateDetails(ctx, 1, UserDetailsPatch{Phone: "0311", MarlaSize: 10})
		require.NoError(t, err)
		assert.Equal(t, "Ali", user.Name)
		assert.Equal(t, "0311", user.Phone)
		assert.Equal(t, 10, user.House.MarlaSize)
		assert.Equal(t, "A", user.House.Choice)
	})

	t.Run("UnsupportedSize", func(t *testing.T) {
		svc, _ := newAdminFixture()
		_, err := svc.UpdateDetails(ctx, 1, UserDetailsPatch{MarlaSize: 3})
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestAdminUserService_SetActive(t *testing.T) {
	ctx := context.Background()
	svc, userRepo := newAdminFixture()

	target := &domain.User{ID: 1, IsActive: true}
	userRepo.On("GetByIDForUpdate", ctx, int32(1)).Return(target, nil)
	userRepo.On("Update", ctx, target).Return(nil)
	userRepo.On("GetByIDForUpdate", ctx, int32(2)).Return(nil, repository.ErrNotFound)

	require.NoError(t, svc.SetActive(ctx, 1, false))
	assert.False(t, target.IsActive)

	assert.EqualError(t, svc.SetActive(ctx, 2, true), "User not found")
}
