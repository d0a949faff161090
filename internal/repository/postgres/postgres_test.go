package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-management-backend/internal/repository/postgres"
)

func TestTxManager_WithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("CommitsOnSuccess", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		store := postgres.NewStore(db)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE users SET balance").
			WithArgs(decimal.NewFromInt(500), int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = store.WithinTx(ctx, func(ctx context.Context) error {
			return store.Users.UpdateBalance(ctx, 1, decimal.NewFromInt(500))
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnError", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		store := postgres.NewStore(db)
		boom := errors.New("boom")

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE products SET quantity").
			WithArgs(2, int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		err = store.WithinTx(ctx, func(ctx context.Context) error {
			if err := store.Products.DecrementStock(ctx, 7, 2); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NestedJoinsOuter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		tm := postgres.NewTxManager(db)

		mock.ExpectBegin()
		mock.ExpectCommit()

		calls := 0
		err = tm.WithinTx(ctx, func(ctx context.Context) error {
			return tm.WithinTx(ctx, func(ctx context.Context) error {
				calls++
				return nil
			})
		})
		assert.NoError(t, err)
		assert.Equal(t, 1, calls)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("BeginFails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin().WillReturnError(assert.AnError)

		err = postgres.NewTxManager(db).WithinTx(ctx, func(ctx context.Context) error {
			t.Fatal("fn must not run")
			return nil
		})
		assert.ErrorIs(t, err, assert.AnError)
	})
}
