package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-management-backend/internal/domain"
	"society-management-backend/internal/repository/postgres"
)

func TestOrderRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewOrderRepository(db)
	o := &domain.Order{
		UserID:   1,
		Username: "alice",
		Items: domain.OrderItems{{ProductID: 2, ProductName: "Soap", Quantity: 2,
			Price: decimal.NewFromInt(120), Total: decimal.NewFromInt(240)}},
		TotalAmount: decimal.NewFromInt(240),
		Status:      domain.OrderStatusCompleted,
	}

	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int32(1), "alice", `[{"productId":2,"productName":"Soap","quantity":2,"price":120,"total":240}]`,
			decimal.NewFromInt(240), "completed", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))

	require.NoError(t, repo.Create(context.Background(), o))
	assert.Equal(t, int32(4), o.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_ListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewOrderRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "username", "items", "total_amount", "status", "created_at"}).
		AddRow(4, 1, "alice", []byte(`[{"productId":2,"productName":"Soap","quantity":2,"price":120,"total":240}]`), "240.00", "completed", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE user_id = \\$1").
		WithArgs(int32(1)).
		WillReturnRows(rows)

	orders, err := repo.ListByUser(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Soap", orders[0].Items[0].ProductName)
	assert.True(t, orders[0].Items[0].Total.Equal(decimal.NewFromInt(240)))
}

func TestOrderRepository_TotalRevenue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total_amount\\), 0\\) FROM orders").
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("12345.67"))

	total, err := postgres.NewOrderRepository(db).TotalRevenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "12345.67", total.StringFixed(2))
}
