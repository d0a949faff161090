package postgres_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"society-management-backend/internal/repository/postgres"
)

func TestDoctorRepository_LockTableJoinsTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := postgres.NewStore(db)

	mock.ExpectBegin()
	mock.ExpectExec("LOCK TABLE doctors IN SHARE ROW EXCLUSIVE MODE").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM doctors").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCommit()

	err = store.WithinTx(context.Background(), func(ctx context.Context) error {
		if err := store.Doctors.LockTable(ctx); err != nil {
			return err
		}
		n, err := store.Doctors.Count(ctx)
		assert.Equal(t, int64(0), n)
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDoctorRepository_ListEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM doctors ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "contact_no", "specialization", "is_available"}))

	doctors, err := postgres.NewDoctorRepository(db).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, doctors)
	assert.Empty(t, doctors)
}
