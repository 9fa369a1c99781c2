package currency_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	currencyrepo "github.com/ShantamRU/extraordinary-bank/infra/repository/currency"
	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

func TestGetMapsRow(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := currencyrepo.New(gdb)

	mock.ExpectQuery(`SELECT \* FROM "currencies" WHERE code = \$1`).
		WithArgs("USD", 1).
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "rate"}).
			AddRow("USD", "US Dollar", "74.57"))

	cur, err := repo.Get(context.Background(), "USD")
	require.NoError(t, err)
	assert.Equal(t, "US Dollar", cur.Name)
	assert.True(t, cur.Rate.Equal(decimal.RequireFromString("74.57")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissingCode(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := currencyrepo.New(gdb)

	mock.ExpectQuery(`SELECT \* FROM "currencies" WHERE code = \$1`).
		WithArgs("XYZ", 1).
		WillReturnRows(sqlmock.NewRows([]string{"code", "name", "rate"}))

	_, err := repo.Get(context.Background(), "XYZ")
	assert.ErrorIs(t, err, domain.ErrCurrencyNotFound)
}

func TestUpdateRate(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := currencyrepo.New(gdb)

	mock.ExpectExec(`UPDATE "currencies" SET "rate"=\$1,"updated_at"=\$2 WHERE code = \$3`).
		WithArgs("80", sqlmock.AnyArg(), "USD").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateRate(context.Background(), "USD", decimal.NewFromInt(80))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
