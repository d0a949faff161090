package http

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/service"
)

// Each mock embeds its interface so only the methods a test exercises need bodies.

type MockAuthService struct {
	service.AuthService
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.User, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*domain.User), args.String(1), args.Error(2)
}

type MockAccessService struct {
	mock.Mock
}

func (m *MockAccessService) RequirePermission(ctx context.Context, userID int32, capability domain.Capability) (*domain.User, error) {
	args := m.Called(ctx, userID, capability)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAccessService) RequireAdmin(ctx context.Context, userID int32) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockBillService struct {
	service.BillService
	mock.Mock
}

func (m *MockBillService) GenerateOrFetch(ctx context.Context, userID int32) ([]domain.Bill, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bill), args.Error(1)
}

func (m *MockBillService) PayBill(ctx context.Context, userID, billID int32) (*service.BillPayment, error) {
	args := m.Called(ctx, userID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BillPayment), args.Error(1)
}

type MockEventService struct {
	service.EventService
	mock.Mock
}

func (m *MockEventService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *MockEventService) CreateEvent(ctx context.Context, in service.EventInput) (*domain.Event, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

type MockStoreService struct {
	service.StoreService
	mock.Mock
}

func (m *MockStoreService) PlaceOrder(ctx context.Context, userID int32, lines []service.OrderLine) (*service.OrderReceipt, error) {
	args := m.Called(ctx, userID, lines)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OrderReceipt), args.Error(1)
}

type MockBalanceRequestService struct {
	service.BalanceRequestService
	mock.Mock
}

func (m *MockBalanceRequestService) Process(ctx context.Context, admin *domain.User, requestID int32, status domain.BalanceRequestStatus, notes string) (*domain.BalanceRequest, error) {
	args := m.Called(ctx, admin, requestID, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceRequest), args.Error(1)
}

type MockAdminUserService struct {
	service.AdminUserService
	mock.Mock
}

func (m *MockAdminUserService) UpdateBalance(ctx context.Context, actor *domain.User, userID int32, op service.BalanceOperation, amount decimal.Decimal) (*domain.User, error) {
	args := m.Called(ctx, actor, userID, op, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type MockHealthService struct {
	service.HealthService
	mock.Mock
}

func (m *MockHealthService) BookAppointment(ctx context.Context, userID, doctorID int32, disease string, date *time.Time) (*domain.Appointment, *domain.Doctor, error) {
	args := m.Called(ctx, userID, doctorID, disease, date)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Appointment), args.Get(1).(*domain.Doctor), args.Error(2)
}
