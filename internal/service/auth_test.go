package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/repository"
	"society-management-backend/internal/security"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testSecret, time.Hour)

	valid := RegisterInput{Username: "ali", Password: "secret1", Name: "Ali", Phone: "0300"}

	t.Run("Success", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens, 5)
		userRepo.On("Create", ctx, mock.MatchedBy(func(u *domain.User) bool {
			return u.Username == "ali" && u.Role == domain.RoleUser && u.IsActive &&
				u.House.MarlaSize == 5 && u.PasswordHash != "secret1"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.User).ID = 11
		}).Return(nil)

		user, token, err := svc.Register(ctx, valid)
		require.NoError(t, err)
		assert.Equal(t, int32(11), user.ID)

		claims, err := tokens.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int32(11), claims.UserID)
	})

	t.Run("ShortUsername", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepo), tokens, 5)
		in := valid
		in.Username = "al"
		_, _, err := svc.Register(ctx, in)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("ShortPassword", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepo), tokens, 5)
		in := valid
		in.Password = "12345"
		_, _, err := svc.Register(ctx, in)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("UnsupportedHouse", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepo), tokens, 5)
		in := valid
		in.House.MarlaSize = 12
		_, _, err := svc.Register(ctx, in)
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		svc := NewAuthService(userRepo, tokens, 5)
		userRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

		_, _, err := svc.Register(ctx, valid)
		assert.True(t, errors.Is(err, ErrConflict))
		assert.EqualError(t, err, "Username already exists")
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	tokens := security.NewTokenManager(testSecret, time.Hour)
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	userRepo := new(MockUserRepo)
	svc := NewAuthService(userRepo, tokens, 5)
	userRepo.On("GetByUsername", ctx, "ali").Return(&domain.User{ID: 1, Username: "ali", PasswordHash: string(hash), Role: domain.RoleUser, IsActive: true}, nil)
	userRepo.On("GetByUsername", ctx, "old").Return(&domain.User{ID: 2, Username: "old", PasswordHash: string(hash), IsActive: false}, nil)
	userRepo.On("GetByUsername", ctx, "ghost").Return(nil, repository.ErrNotFound)

	t.Run("Success", func(t *testing.T) {
		user, token, err := svc.Login(ctx, "ali", "secret1")
		require.NoError(t, err)
		assert.Equal(t, int32(1), user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ali", "nope")
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "ghost", "secret1")
		assert.True(t, errors.Is(err, ErrInvalidCredentials))
	})

	t.Run("Deactivated", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "old", "secret1")
		assert.True(t, errors.Is(err, ErrForbidden))
	})
}
