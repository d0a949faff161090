package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.TxManager
	Users           repository.UserRepository
	Bills           repository.BillRepository
	Events          repository.EventRepository
	Products        repository.ProductRepository
	Orders          repository.OrderRepository
	BalanceRequests repository.BalanceRequestRepository
	Transactions    repository.TransactionRepository
	Complaints      repository.ComplaintRepository
	Doctors         repository.DoctorRepository
	Appointments    repository.AppointmentRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:              db,
		TxManager:       NewTxManager(db),
		Users:           NewUserRepository(db),
		Bills:           NewBillRepository(db),
		Events:          NewEventRepository(db),
		Products:        NewProductRepository(db),
		Orders:          NewOrderRepository(db),
		BalanceRequests: NewBalanceRequestRepository(db),
		Transactions:    NewTransactionRepository(db),
		Complaints:      NewComplaintRepository(db),
		Doctors:         NewDoctorRepository(db),
		Appointments:    NewAppointmentRepository(db),
	}
}

// Ping checks the underlying connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type txKey struct{}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the transaction carried by ctx, or db when there is none.
func conn(ctx context.Context, db *sql.DB) querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}

type txManager struct {
	db *sql.DB
}

func NewTxManager(db *sql.DB) repository.TxManager {
	return &txManager{db: db}
}

func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// Nested calls join the outer transaction.
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	logger.DatabaseCall("BEGIN", "transaction")
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		logger.DatabaseResult("BEGIN", 0, err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		logger.DatabaseResult("COMMIT", 0, err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

// duplicate maps a unique_violation to ErrDuplicate.
func duplicate(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return repository.ErrDuplicate
	}
	return err
}

// expectOne turns a zero-row UPDATE or DELETE into ErrNotFound.
func expectOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func count(ctx context.Context, db *sql.DB, query string, args ...any) (int64, error) {
	var n int64
	err := conn(ctx, db).QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}
