package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, string, error)
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
}

type UserService interface {
	GetProfile(ctx context.Context, userID int32) (*domain.User, error)
}

// AccessService is the admin authorization gate. It reads the caller from storage
// on every call so role and permission changes apply immediately.
type AccessService interface {
	RequirePermission(ctx context.Context, userID int32, capability domain.Capability) (*domain.User, error)
	RequireAdmin(ctx context.Context, userID int32) (*domain.User, error)
}

type LedgerService interface {
	Debit(ctx context.Context, user *domain.User, amount decimal.Decimal, entry LedgerEntry) error
	Credit(ctx context.Context, user *domain.User, amount decimal.Decimal, entry LedgerEntry) error
	Set(ctx context.Context, user *domain.User, balance decimal.Decimal, entry LedgerEntry) error
	ListTransactions(ctx context.Context, userID int32) ([]domain.Transaction, error)
}

type BillService interface {
	GenerateOrFetch(ctx context.Context, userID int32) ([]domain.Bill, error)
	ListBills(ctx context.Context, userID int32, month string) ([]domain.Bill, error)
	PayBill(ctx context.Context, userID, billID int32) (*BillPayment, error)
	GenerateForAll(ctx context.Context) (*BulkGeneration, error)
	SendOverdueReminders(ctx context.Context) (int, error)
}

type EventService interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	BookEvent(ctx context.Context, userID, eventID int32) (*EventBooking, error)
	CreateEvent(ctx context.Context, in EventInput) (*domain.Event, error)
	UpdateEvent(ctx context.Context, id int32, in EventInput) (*domain.Event, error)
	DeleteEvent(ctx context.Context, id int32) error
}

type StoreService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	PlaceOrder(ctx context.Context, userID int32, lines []OrderLine) (*OrderReceipt, error)
	ListOrders(ctx context.Context, userID int32) ([]domain.Order, error)
	AddProduct(ctx context.Context, in ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int32, in ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int32) error
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	UpdateStock(ctx context.Context, id int32, quantity int, price *decimal.Decimal) (*domain.Product, error)
	ListLowStock(ctx context.Context) ([]domain.Product, error)
	NotifyLowStock(ctx context.Context) (int, error)
}

type BalanceRequestService interface {
	RequestBalance(ctx context.Context, userID int32, amount decimal.Decimal, reason string) (*domain.BalanceRequest, error)
	History(ctx context.Context, userID int32) ([]domain.BalanceRequest, error)
	ListAll(ctx context.Context) ([]domain.BalanceRequest, error)
	Process(ctx context.Context, admin *domain.User, requestID int32, status domain.BalanceRequestStatus, notes string) (*domain.BalanceRequest, error)
}

type AdminUserService interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateRole(ctx context.Context, actor *domain.User, userID int32, role domain.Role, patch *domain.PermissionsPatch) (*domain.User, error)
	SetActive(ctx context.Context, userID int32, active bool) error
	UpdateBalance(ctx context.Context, actor *domain.User, userID int32, op BalanceOperation, amount decimal.Decimal) (*domain.User, error)
	UpdateDetails(ctx context.Context, userID int32, in UserDetailsPatch) (*domain.User, error)
}

type ComplaintService interface {
	Create(ctx context.Context, userID int32, complaintType, details string) (*domain.Complaint, error)
	ListMine(ctx context.Context, userID int32) ([]domain.Complaint, error)
	ListAll(ctx context.Context) ([]domain.Complaint, error)
	UpdateStatus(ctx context.Context, id int32, status domain.ComplaintStatus) (*domain.Complaint, error)
}

type HealthService interface {
	ListDoctors(ctx context.Context) ([]domain.Doctor, error)
	BookAppointment(ctx context.Context, userID, doctorID int32, disease string, date *time.Time) (*domain.Appointment, *domain.Doctor, error)
	ListMyAppointments(ctx context.Context, userID int32) ([]domain.Appointment, error)
	UpdateMyAppointment(ctx context.Context, userID, appointmentID int32, status domain.AppointmentStatus) error
	DeleteMyAppointment(ctx context.Context, userID, appointmentID int32) error
	ListAllAppointments(ctx context.Context) ([]domain.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, appointmentID int32, status domain.AppointmentStatus) error
}

type DashboardService interface {
	GetDashboard(ctx context.Context) (*domain.Dashboard, error)
}

type EmailService interface {
	SendBalanceRequestOutcome(ctx context.Context, email, name string, req *domain.BalanceRequest) error
	SendBillReminder(ctx context.Context, email, name string, bill *domain.Bill, penaltySoFar decimal.Decimal) error
	SendLowStockAlert(ctx context.Context, email string, products []domain.Product) error
}
