package account_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	accountrepo "github.com/ShantamRU/extraordinary-bank/infra/repository/account"
	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/google/uuid"
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
	repo := accountrepo.New(gdb)

	id := uuid.New()
	ownerID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "currency_code", "balance"}).
			AddRow(id, ownerID, "USD", "12.50"))

	a, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, ownerID, a.UserID)
	assert.Equal(t, "USD", a.CurrencyCode)
	assert.True(t, a.Balance.Equal(decimal.RequireFromString("12.50")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetMissingRow(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := accountrepo.New(gdb)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1`).
		WithArgs(id, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "currency_code", "balance"}))

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToBalanceRunsConditionalUpdate(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := accountrepo.New(gdb)

	id := uuid.New()
	mock.ExpectExec(`UPDATE "accounts" SET "balance"=balance \+ \$1 WHERE id = \$2`).
		WithArgs("-30", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.AddToBalance(context.Background(), id, decimal.NewFromInt(-30))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddToBalanceMissingAccount(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := accountrepo.New(gdb)

	id := uuid.New()
	mock.ExpectExec(`UPDATE "accounts" SET "balance"=balance \+ \$1 WHERE id = \$2`).
		WithArgs("1", id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.AddToBalance(context.Background(), id, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestDeleteScopedByOwner(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := accountrepo.New(gdb)

	id, ownerID := uuid.New(), uuid.New()
	mock.ExpectExec(`DELETE FROM "accounts" WHERE id = \$1 AND user_id = \$2`).
		WithArgs(id, ownerID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), id, ownerID)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
