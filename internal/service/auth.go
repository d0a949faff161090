package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
	"society-management-backend/internal/security"
	"society-management-backend/internal/utils"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

type RegisterInput struct {
	Username string
	Password string
	Name     string
	Phone    string
	Email    string
	House    domain.House
}

type authService struct {
	userRepo     repository.UserRepository
	tokens       security.TokenManager
	defaultMarla int
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager, defaultMarlaSize int) AuthService {
	return &authService{
		userRepo:     userRepo,
		tokens:       tokens,
		defaultMarla: defaultMarlaSize,
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.User, string, error) {
	logger.EnterMethod("authService.Register", "username", in.Username)

	in.Username = strings.TrimSpace(in.Username)
	if len(in.Username) < minUsernameLength {
		return nil, "", validationError(fmt.Sprintf("Username must be at least %d characters", minUsernameLength))
	}
	if len(in.Password) < minPasswordLength {
		return nil, "", validationError(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" {
		return nil, "", validationError("Name and phone are required")
	}

	house := in.House
	if house.MarlaSize == 0 {
		house.MarlaSize = s.defaultMarla
	}
	if !slices.Contains(utils.SupportedHouseSizes(), house.MarlaSize) {
		return nil, "", validationError(fmt.Sprintf("House size must be one of %v marla", utils.SupportedHouseSizes()))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ExitMethodWithError("authService.Register", err)
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		Balance:      decimal.Zero,
		House:        house,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, "", conflictError("Username already exists")
		}
		logger.ExitMethodWithError("authService.Register", err)
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	logger.ExitMethod("authService.Register", "userID", user.ID)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	logger.EnterMethod("authService.Login", "username", username)

	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", newError(ErrInvalidCredentials, "Invalid username or password")
		}
		return nil, "", fmt.Errorf("failed to load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", newError(ErrInvalidCredentials, "Invalid username or password")
	}
	if !user.IsActive {
		return nil, "", forbiddenError("Account is deactivated")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Username, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	logger.ExitMethod("authService.Login", "userID", user.ID)
	return user, token, nil
}
