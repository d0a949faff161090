package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
)

const billColumns = `id, user_id, username, bill_type, amount, billing_month, due_date, is_paid, paid_at, penalty, created_at`

type billRepository struct {
	db *sql.DB
}

func NewBillRepository(db *sql.DB) repository.BillRepository {
	return &billRepository{db: db}
}

func scanBill(row rowScanner) (*domain.Bill, error) {
	b := &domain.Bill{}
	var paidAt sql.NullTime
	err := row.Scan(&b.ID, &b.UserID, &b.Username, &b.BillType, &b.Amount, &b.BillingMonth,
		&b.DueDate, &b.IsPaid, &paidAt, &b.Penalty, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	if paidAt.Valid {
		t := paidAt.Time
		b.PaidAt = &t
	}
	return b, nil
}

func (r *billRepository) CreateIfAbsent(ctx context.Context, b *domain.Bill) (bool, error) {
	query := `INSERT INTO bills (user_id, username, bill_type, amount, billing_month, due_date, is_paid, penalty, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, false, 0, $7)
	          ON CONFLICT (user_id, bill_type, billing_month) DO NOTHING
	          RETURNING id`
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	logger.DatabaseCall("INSERT", "bills", "userID", b.UserID, "billType", b.BillType, "month", b.BillingMonth)

	err := conn(ctx, r.db).QueryRowContext(ctx, query, b.UserID, b.Username, b.BillType, b.Amount,
		b.BillingMonth, b.DueDate, b.CreatedAt).Scan(&b.ID)
	if err == sql.ErrNoRows {
		logger.DatabaseResult("INSERT", 0, nil, "userID", b.UserID, "skipped", "exists")
		return false, nil
	}
	if err != nil {
		logger.DatabaseResult("INSERT", 0, err, "userID", b.UserID)
		return false, err
	}
	b.Penalty = decimal.Zero
	logger.DatabaseResult("INSERT", 1, nil, "userID", b.UserID, "billID", b.ID)
	return true, nil
}

func (r *billRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Bill, error) {
	query := `SELECT ` + billColumns + ` FROM bills WHERE id = $1 FOR UPDATE`
	b, err := scanBill(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	return b, notFound(err)
}

func (r *billRepository) ListByUser(ctx context.Context, userID int32) ([]domain.Bill, error) {
	return r.list(ctx, `SELECT `+billColumns+` FROM bills WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
}

func (r *billRepository) ListByUserAndMonth(ctx context.Context, userID int32, month string) ([]domain.Bill, error) {
	return r.list(ctx, `SELECT `+billColumns+` FROM bills WHERE user_id = $1 AND billing_month = $2 ORDER BY id`, userID, month)
}

func (r *billRepository) ListUnpaidOverdue(ctx context.Context, month string, now time.Time) ([]domain.Bill, error) {
	return r.list(ctx, `SELECT `+billColumns+` FROM bills WHERE billing_month = $1 AND is_paid = false AND due_date < $2 ORDER BY user_id, id`, month, now)
}

func (r *billRepository) list(ctx context.Context, query string, args ...any) ([]domain.Bill, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bills := make([]domain.Bill, 0)
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, *b)
	}
	return bills, rows.Err()
}

func (r *billRepository) MarkPaid(ctx context.Context, id int32, paidAt time.Time, penalty decimal.Decimal) error {
	query := `UPDATE bills SET is_paid = true, paid_at = $1, penalty = $2 WHERE id = $3 AND is_paid = false`
	logger.DatabaseCall("UPDATE", "bills", "billID", id)
	res, err := conn(ctx, r.db).ExecContext(ctx, query, paidAt, penalty, id)
	err = expectOne(res, err)
	logger.DatabaseResult("UPDATE", 1, err, "billID", id)
	return err
}
