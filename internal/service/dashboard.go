package service

import (
	"context"
	"fmt"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/repository"
)

const dashboardRecentLimit = 5

type dashboardService struct {
	userRepo      repository.UserRepository
	complaintRepo repository.ComplaintRepository
	eventRepo     repository.EventRepository
	productRepo   repository.ProductRepository
	orderRepo     repository.OrderRepository
}

func NewDashboardService(
	userRepo repository.UserRepository,
	complaintRepo repository.ComplaintRepository,
	eventRepo repository.EventRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) DashboardService {
	return &dashboardService{
		userRepo:      userRepo,
		complaintRepo: complaintRepo,
		eventRepo:     eventRepo,
		productRepo:   productRepo,
		orderRepo:     orderRepo,
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	var (
		stats domain.DashboardStats
		err   error
	)

	if stats.TotalUsers, err = s.userRepo.CountByRole(ctx, domain.RoleUser); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if stats.TotalComplaints, err = s.complaintRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count complaints: %w", err)
	}
	if stats.PendingComplaints, err = s.complaintRepo.CountByStatus(ctx, domain.ComplaintStatusPending); err != nil {
		return nil, fmt.Errorf("failed to count pending complaints: %w", err)
	}
	if stats.TotalEvents, err = s.eventRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count events: %w", err)
	}
	if stats.TotalProducts, err = s.productRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if stats.TotalOrders, err = s.orderRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if stats.TotalRevenue, err = s.orderRepo.TotalRevenue(ctx); err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	complaints, err := s.complaintRepo.ListRecent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent complaints: %w", err)
	}
	orders, err := s.orderRepo.ListRecent(ctx, dashboardRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}

	return &domain.Dashboard{
		Stats:            stats,
		RecentComplaints: complaints,
		RecentOrders:     orders,
	}, nil
}
