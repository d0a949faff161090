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

func TestDashboardService_GetDashboard(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepo)
	complaintRepo := new(MockComplaintRepo)
	eventRepo := new(MockEventRepo)
	productRepo := new(MockProductRepo)
	orderRepo := new(MockOrderRepo)
	svc := NewDashboardService(userRepo, complaintRepo, eventRepo, productRepo, orderRepo)

	userRepo.On("CountByRole", ctx, domain.RoleUser).Return(int64(12), nil)
	complaintRepo.On("Count", ctx).Return(int64(7), nil)
	complaintRepo.On("CountByStatus", ctx, domain.ComplaintStatusPending).Return(int64(3), nil)
	eventRepo.On("Count", ctx).Return(int64(2), nil)
	productRepo.On("Count", ctx).Return(int64(40), nil)
	orderRepo.On("Count", ctx).Return(int64(9), nil)
	orderRepo.On("TotalRevenue", ctx).Return(dec("15230.50"), nil)
	complaintRepo.On("ListRecent", ctx, 5).Return([]domain.Complaint{{ID: 1}}, nil)
	orderRepo.On("ListRecent", ctx, 5).Return([]domain.Order{{ID: 4}, {ID: 3}}, nil)

	dash, err := svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), dash.Stats.TotalUsers)
	assert.Equal(t, int64(3), dash.Stats.PendingComplaints)
	assert.True(t, dash.Stats.TotalRevenue.Equal(dec("15230.5")))
	assert.Len(t, dash.RecentOrders, 2)
}

func TestComplaintService(t *testing.T) {
	ctx := context.Background()
	complaintRepo := new(MockComplaintRepo)
	userRepo := new(MockUserRepo)
	svc := NewComplaintService(complaintRepo, userRepo)

	t.Run("Create", func(t *testing.T) {
		userRepo.On("GetByID", ctx, int32(1)).Return(&domain.User{ID: 1, Username: "ali"}, nil)
		complaintRepo.On("Create", ctx, &domain.Complaint{
			UserID: 1, Username: "ali", ComplaintType: "Water", ComplaintDetails: "No supply",
			Status: domain.ComplaintStatusPending,
		}).Return(nil)

		c, err := svc.Create(ctx, 1, "Water", "No supply")
		require.NoError(t, err)
		assert.Equal(t, "ali", c.Username)
	})

	t.Run("MissingFields", func(t *testing.T) {
		_, err := svc.Create(ctx, 1, "", "x")
		assert.True(t, errors.Is(err, ErrValidation))
	})

	t.Run("UpdateStatusMissing", func(t *testing.T) {
		complaintRepo.On("UpdateStatus", ctx, int32(9), domain.ComplaintStatusResolved).Return(nil, repository.ErrNotFound)
		_, err := svc.UpdateStatus(ctx, 9, domain.ComplaintStatusResolved)
		assert.EqualError(t, err, "Complaint not found")
	})

	t.Run("UpdateStatusInvalid", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, 9, domain.ComplaintStatus("closed"))
		assert.True(t, errors.Is(err, ErrValidation))
	})
}
