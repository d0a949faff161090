package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"society-management-backend/internal/domain"
)

// fakeTx runs fn directly with the caller's context.
type fakeTx struct {
	calls int
}

func (f *fakeTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) ListActiveResidents(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateBalance(ctx context.Context, id int32, balance decimal.Decimal) error {
	args := m.Called(ctx, id, balance)
	return args.Error(0)
}
func (m *MockUserRepo) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	args := m.Called(ctx, role)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockUserRepo) ExistsWithRole(ctx context.Context, role domain.Role) (bool, error) {
	args := m.Called(ctx, role)
	return args.Bool(0), args.Error(1)
}

// MockBillRepo
type MockBillRepo struct {
	mock.Mock
}

func (m *MockBillRepo) CreateIfAbsent(ctx context.Context, bill *domain.Bill) (bool, error) {
	args := m.Called(ctx, bill)
	return args.Bool(0), args.Error(1)
}
func (m *MockBillRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Bill, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}
func (m *MockBillRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Bill, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Bill), args.Error(1)
}
func (m *MockBillRepo) ListByUserAndMonth(ctx context.Context, userID int32, month string) ([]domain.Bill, error) {
	args := m.Called(ctx, userID, month)
	return args.Get(0).([]domain.Bill), args.Error(1)
}
func (m *MockBillRepo) ListUnpaidOverdue(ctx context.Context, month string, now time.Time) ([]domain.Bill, error) {
	args := m.Called(ctx, month, now)
	return args.Get(0).([]domain.Bill), args.Error(1)
}
func (m *MockBillRepo) MarkPaid(ctx context.Context, id int32, paidAt time.Time, penalty decimal.Decimal) error {
	args := m.Called(ctx, id, paidAt, penalty)
	return args.Error(0)
}

// MockEventRepo
type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) GetByID(ctx context.Context, id int32) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}
func (m *MockEventRepo) List(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Event), args.Error(1)
}
func (m *MockEventRepo) Update(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
func (m *MockEventRepo) AddBooking(ctx context.Context, id int32, username string) error {
	args := m.Called(ctx, id, username)
	return args.Error(0)
}
func (m *MockEventRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEventRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) ListActive(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepo) ListByCategory(ctx context.Context, category domain.ProductCategory) ([]domain.Product, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepo) ListLowStock(ctx context.Context) ([]domain.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) DecrementStock(ctx context.Context, id int32, qty int) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}
func (m *MockProductRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProductRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockOrderRepo
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}
func (m *MockOrderRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Order, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) ListRecent(ctx context.Context, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Order), args.Error(1)
}
func (m *MockOrderRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockOrderRepo) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockBalanceRequestRepo
type MockBalanceRequestRepo struct {
	mock.Mock
}

func (m *MockBalanceRequestRepo) Create(ctx context.Context, req *domain.BalanceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockBalanceRequestRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.BalanceRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceRequest), args.Error(1)
}
func (m *MockBalanceRequestRepo) HasPending(ctx context.Context, userID int32) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockBalanceRequestRepo) ListByUser(ctx context.Context, userID int32) ([]domain.BalanceRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.BalanceRequest), args.Error(1)
}
func (m *MockBalanceRequestRepo) ListAll(ctx context.Context) ([]domain.BalanceRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BalanceRequest), args.Error(1)
}
func (m *MockBalanceRequestRepo) Update(ctx context.Context, req *domain.BalanceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockTransactionRepo
type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
func (m *MockTransactionRepo) ListByUser(ctx context.Context, userID int32, limit int) ([]domain.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

// MockComplaintRepo
type MockComplaintRepo struct {
	mock.Mock
}

func (m *MockComplaintRepo) Create(ctx context.Context, complaint *domain.Complaint) error {
	args := m.Called(ctx, complaint)
	return args.Error(0)
}
func (m *MockComplaintRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Complaint, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Complaint), args.Error(1)
}
func (m *MockComplaintRepo) ListAll(ctx context.Context) ([]domain.Complaint, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Complaint), args.Error(1)
}
func (m *MockComplaintRepo) ListRecent(ctx context.Context, limit int) ([]domain.Complaint, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Complaint), args.Error(1)
}
func (m *MockComplaintRepo) UpdateStatus(ctx context.Context, id int32, status domain.ComplaintStatus) (*domain.Complaint, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Complaint), args.Error(1)
}
func (m *MockComplaintRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockComplaintRepo) CountByStatus(ctx context.Context, status domain.ComplaintStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

// MockDoctorRepo
type MockDoctorRepo struct {
	mock.Mock
}

func (m *MockDoctorRepo) Create(ctx context.Context, doctor *domain.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}
func (m *MockDoctorRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Doctor), args.Error(1)
}
func (m *MockDoctorRepo) List(ctx context.Context) ([]domain.Doctor, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Doctor), args.Error(1)
}
func (m *MockDoctorRepo) LockTable(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockDoctorRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockDoctorRepo) SetAvailability(ctx context.Context, id int32, available bool) error {
	args := m.Called(ctx, id, available)
	return args.Error(0)
}

// MockAppointmentRepo
type MockAppointmentRepo struct {
	mock.Mock
}

func (m *MockAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}
func (m *MockAppointmentRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}
func (m *MockAppointmentRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Appointment, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}
func (m *MockAppointmentRepo) ListAll(ctx context.Context) ([]domain.Appointment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Appointment), args.Error(1)
}
func (m *MockAppointmentRepo) UpdateStatus(ctx context.Context, id int32, status domain.AppointmentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockAppointmentRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBalanceRequestOutcome(ctx context.Context, email, name string, req *domain.BalanceRequest) error {
	args := m.Called(ctx, email, name, req)
	return args.Error(0)
}
func (m *MockEmailService) SendBillReminder(ctx context.Context, email, name string, bill *domain.Bill, penaltySoFar decimal.Decimal) error {
	args := m.Called(ctx, email, name, bill, penaltySoFar)
	return args.Error(0)
}
func (m *MockEmailService) SendLowStockAlert(ctx context.Context, email string, products []domain.Product) error {
	args := m.Called(ctx, email, products)
	return args.Error(0)
}
