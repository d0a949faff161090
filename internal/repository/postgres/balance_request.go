package postgres

import (
	"context"
	"database/sql"
	"time"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/repository"
)

const balanceRequestColumns = `id, user_id, username, COALESCE(user_email, ''), COALESCE(user_phone, ''), requested_amount, reason,
	status, COALESCE(admin_notes, ''), COALESCE(processed_by, ''), processed_at, created_at`

type balanceRequestRepository struct {
	db *sql.DB
}

func NewBalanceRequestRepository(db *sql.DB) repository.BalanceRequestRepository {
	return &balanceRequestRepository{db: db}
}

func scanBalanceRequest(row rowScanner) (*domain.BalanceRequest, error) {
	br := &domain.BalanceRequest{}
	var processedAt sql.NullTime
	err := row.Scan(&br.ID, &br.UserID, &br.Username, &br.UserEmail, &br.UserPhone, &br.RequestedAmount, &br.Reason,
		&br.Status, &br.AdminNotes, &br.ProcessedBy, &processedAt, &br.CreatedAt)
	if err != nil {
		return nil, err
	}
	if processedAt.Valid {
		t := processedAt.Time
		br.ProcessedAt = &t
	}
	return br, nil
}

func (r *balanceRequestRepository) Create(ctx context.Context, br *domain.BalanceRequest) error {
	query := `INSERT INTO balance_requests (user_id, username, user_email, user_phone, requested_amount, reason, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	br.CreatedAt = time.Now().UTC()
	err := conn(ctx, r.db).QueryRowContext(ctx, query, br.UserID, br.Username, br.UserEmail, br.UserPhone,
		br.RequestedAmount, br.Reason, br.Status, br.CreatedAt).Scan(&br.ID)
	return duplicate(err)
}

func (r *balanceRequestRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.BalanceRequest, error) {
	query := `SELECT ` + balanceRequestColumns + ` FROM balance_requests WHERE id = $1 FOR UPDATE`
	br, err := scanBalanceRequest(conn(ctx, r.db).QueryRowContext(ctx, query, id))
	return br, notFound(err)
}

func (r *balanceRequestRepository) HasPending(ctx context.Context, userID int32) (bool, error) {
	var exists bool
	err := conn(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM balance_requests WHERE user_id = $1 AND status = 'pending')`, userID).Scan(&exists)
	return exists, err
}

func (r *balanceRequestRepository) ListByUser(ctx context.Context, userID int32) ([]domain.BalanceRequest, error) {
	return r.list(ctx, `SELECT `+balanceRequestColumns+` FROM balance_requests WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *balanceRequestRepository) ListAll(ctx context.Context) ([]domain.BalanceRequest, error) {
	return r.list(ctx, `SELECT `+balanceRequestColumns+` FROM balance_requests ORDER BY created_at DESC`)
}

func (r *balanceRequestRepository) list(ctx context.Context, query string, args ...any) ([]domain.BalanceRequest, error) {
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reqs := make([]domain.BalanceRequest, 0)
	for rows.Next() {
		br, err := scanBalanceRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *br)
	}
	return reqs, rows.Err()
}

func (r *balanceRequestRepository) Update(ctx context.Context, br *domain.BalanceRequest) error {
	query := `UPDATE balance_requests SET status=$1, admin_notes=$2, processed_by=$3, processed_at=$4 WHERE id=$5`
	res, err := conn(ctx, r.db).ExecContext(ctx, query, br.Status, br.AdminNotes, br.ProcessedBy, br.ProcessedAt, br.ID)
	return expectOne(res, err)
}
