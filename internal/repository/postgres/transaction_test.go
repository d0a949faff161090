package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/repository/postgres"
)

func TestTransactionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewTransactionRepository(db)
	related := int32(3)
	tx := &domain.Transaction{
		UserID:        1,
		Username:      "alice",
		Type:          domain.TransactionTypeEventBooking,
		Amount:        decimal.NewFromInt(500),
		Description:   "Event booking: Gala - VIP ticket",
		RelatedID:     &related,
		BalanceBefore: decimal.NewFromInt(1000),
		BalanceAfter:  decimal.NewFromInt(500),
	}

	mock.ExpectQuery("INSERT INTO transactions").
		WithArgs(sqlmock.AnyArg(), int32(1), "alice", "event_booking", decimal.NewFromInt(500),
			"Event booking: Gala - VIP ticket", int32(3), decimal.NewFromInt(1000), decimal.NewFromInt(500),
			"completed", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))

	require.NoError(t, repo.Create(context.Background(), tx))
	assert.Equal(t, int32(12), tx.ID)
	_, err = uuid.Parse(tx.Reference)
	assert.NoError(t, err)
	assert.Equal(t, domain.TransactionStatusCompleted, tx.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "reference", "user_id", "username", "type", "amount", "description",
		"related_id", "balance_before", "balance_after", "status", "created_at"}).
		AddRow(1, uuid.NewString(), 1, "alice", "event_booking", "500", "x", 3, "1000", "500", "completed", time.Now()).
		AddRow(2, uuid.NewString(), 1, "alice", "balance_added", "200", "y", nil, "500", "700", "completed", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM transactions WHERE user_id = \\$1 ORDER BY created_at DESC LIMIT \\$2").
		WithArgs(int32(1), 50).
		WillReturnRows(rows)

	txs, err := postgres.NewTransactionRepository(db).ListByUser(context.Background(), 1, 50)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	require.NotNil(t, txs[0].RelatedID)
	assert.Equal(t, int32(3), *txs[0].RelatedID)
	assert.Nil(t, txs[1].RelatedID)
}
