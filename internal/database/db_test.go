package database

import (
	"errors"
	"testing"

	"github.com/Nicoczyruk/standburg-project-sub000/internal/config"
	"github.com/Nicoczyruk/standburg-project-sub000/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	// gorm.Open hace ping al abrir
	mock.ExpectPing()
	db, err := Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &config.Config{LogLevel: "silent"})
	require.NoError(t, err)

	return db, mock
}

func TestPing(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectPing()
	assert.NoError(t, Ping(db))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, Ping(db))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumAmount(t *testing.T) {
	t.Run("rounds to cents", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "payments" WHERE method = \$1`).
			WithArgs(string(models.PaymentCash)).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("75.005"))

		total, err := SumAmount(db.Model(&models.Payment{}).Where("method = ?", models.PaymentCash))
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("75.01").Equal(total), "got %s", total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates store errors", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery(`SELECT COALESCE`).WillReturnError(errors.New("timeout"))

		total, err := SumAmount(db.Model(&models.Expense{}))
		assert.Error(t, err)
		assert.True(t, total.IsZero())
	})
}
