package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/logger"
	"society-management-backend/internal/repository"
)

type transactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, t *domain.Transaction) error {
	query := `INSERT INTO transactions (reference, user_id, username, type, amount, description, related_id, balance_before, balance_after, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	if t.Reference == "" {
		t.Reference = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = domain.TransactionStatusCompleted
	}
	t.CreatedAt = time.Now().UTC()

	logger.DatabaseCall("INSERT", "transactions", "userID", t.UserID, "type", t.Type)
	err := conn(ctx, r.db).QueryRowContext(ctx, query, t.Reference, t.UserID, t.Username, t.Type, t.Amount, t.Description,
		t.RelatedID, t.BalanceBefore, t.BalanceAfter, t.Status, t.CreatedAt).Scan(&t.ID)
	logger.DatabaseResult("INSERT", 1, err, "userID", t.UserID)
	return err
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID int32, limit int) ([]domain.Transaction, error) {
	query := `SELECT id, reference, user_id, username, type, amount, description, related_id, balance_before, balance_after, status, created_at
	          FROM transactions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := conn(ctx, r.db).QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := make([]domain.Transaction, 0)
	for rows.Next() {
		var t domain.Transaction
		var relatedID sql.NullInt32
		if err := rows.Scan(&t.ID, &t.Reference, &t.UserID, &t.Username, &t.Type, &t.Amount, &t.Description,
			&relatedID, &t.BalanceBefore, &t.BalanceAfter, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		if relatedID.Valid {
			id := relatedID.Int32
			t.RelatedID = &id
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
