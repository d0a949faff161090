package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
)

var (
	// ErrNotFound is returned when a lookup by key matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert hits a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// TxManager runs fn inside one database transaction. Repository calls made with the
// ctx passed to fn join that transaction; fn returning an error rolls everything back.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	ListActiveResidents(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateBalance(ctx context.Context, id int32, balance decimal.Decimal) error
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	ExistsWithRole(ctx context.Context, role domain.Role) (bool, error)
}

type BillRepository interface {
	// CreateIfAbsent inserts the bill unless one already exists for the same
	// user, type and billing month. Reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, bill *domain.Bill) (bool, error)
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Bill, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Bill, error)
	ListByUserAndMonth(ctx context.Context, userID int32, month string) ([]domain.Bill, error)
	ListUnpaidOverdue(ctx context.Context, month string, now time.Time) ([]domain.Bill, error)
	MarkPaid(ctx context.Context, id int32, paidAt time.Time, penalty decimal.Decimal) error
}

type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id int32) (*domain.Event, error)
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Update(ctx context.Context, event *domain.Event) error
	AddBooking(ctx context.Context, id int32, username string) error
	Delete(ctx context.Context, id int32) error
	Count(ctx context.Context) (int64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int32) (*domain.Product, error)
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Product, error)
	ListActive(ctx context.Context) ([]domain.Product, error)
	ListByCategory(ctx context.Context, category domain.ProductCategory) ([]domain.Product, error)
	ListLowStock(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	DecrementStock(ctx context.Context, id int32, qty int) error
	Delete(ctx context.Context, id int32) error
	Count(ctx context.Context) (int64, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	ListByUser(ctx context.Context, userID int32) ([]domain.Order, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Order, error)
	Count(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
}

type BalanceRequestRepository interface {
	Create(ctx context.Context, req *domain.BalanceRequest) error
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.BalanceRequest, error)
	HasPending(ctx context.Context, userID int32) (bool, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.BalanceRequest, error)
	ListAll(ctx context.Context) ([]domain.BalanceRequest, error)
	Update(ctx context.Context, req *domain.BalanceRequest) error
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	ListByUser(ctx context.Context, userID int32, limit int) ([]domain.Transaction, error)
}

type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	ListByUser(ctx context.Context, userID int32) ([]domain.Complaint, error)
	ListAll(ctx context.Context) ([]domain.Complaint, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Complaint, error)
	UpdateStatus(ctx context.Context, id int32, status domain.ComplaintStatus) (*domain.Complaint, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.ComplaintStatus) (int64, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *domain.Doctor) error
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Doctor, error)
	List(ctx context.Context) ([]domain.Doctor, error)
	Count(ctx context.Context) (int64, error)
	SetAvailability(ctx context.Context, id int32, available bool) error
	// LockTable blocks other writers and lockers until the surrounding transaction ends.
	LockTable(ctx context.Context) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) error
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Appointment, error)
	ListByUser(ctx context.Context, userID int32) ([]domain.Appointment, error)
	ListAll(ctx context.Context) ([]domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int32, status domain.AppointmentStatus) error
	Delete(ctx context.Context, id int32) error
}
