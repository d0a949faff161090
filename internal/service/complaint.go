package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/repository"
)

type complaintService struct {
	complaintRepo repository.ComplaintRepository
	userRepo      repository.UserRepository
}

func NewComplaintService(complaintRepo repository.ComplaintRepository, userRepo repository.UserRepository) ComplaintService {
	return &complaintService{
		complaintRepo: complaintRepo,
		userRepo:      userRepo,
	}
}

func (s *complaintService) Create(ctx context.Context, userID int32, complaintType, details string) (*domain.Complaint, error) {
	if strings.TrimSpace(complaintType) == "" || strings.TrimSpace(details) == "" {
		return nil, validationError("Complaint type and details are required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("User not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	complaint := &domain.Complaint{
		UserID:           user.ID,
		Username:         user.Username,
		ComplaintType:    strings.TrimSpace(complaintType),
		ComplaintDetails: details,
		Status:           domain.ComplaintStatusPending,
	}
	if err := s.complaintRepo.Create(ctx, complaint); err != nil {
		return nil, fmt.Errorf("failed to create complaint: %w", err)
	}
	return complaint, nil
}

func (s *complaintService) ListMine(ctx context.Context, userID int32) ([]domain.Complaint, error) {
	complaints, err := s.complaintRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

func (s *complaintService) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	complaints, err := s.complaintRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list complaints: %w", err)
	}
	return complaints, nil
}

func (s *complaintService) UpdateStatus(ctx context.Context, id int32, status domain.ComplaintStatus) (*domain.Complaint, error) {
	if status != domain.ComplaintStatusPending && status != domain.ComplaintStatusResolved {
		return nil, validationError(`Invalid status. Must be "pending" or "resolved"`)
	}

	complaint, err := s.complaintRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFoundError("Complaint not found")
		}
		return nil, fmt.Errorf("failed to update complaint: %w", err)
	}
	return complaint, nil
}
