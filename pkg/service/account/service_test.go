package account_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/ShantamRU/extraordinary-bank/internal/fixtures"
	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/ShantamRU/extraordinary-bank/pkg/service/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(store *fixtures.Store) *account.Service {
	return account.New(fixtures.NewUoW(store), slog.New(slog.DiscardHandler))
}

func TestCreateStoresAccount(t *testing.T) {
	store := fixtures.NewStore()
	store.SeedCurrency(domain.Currency{Code: "USD", Name: "US Dollar", Rate: decimal.NewFromInt(75)})
	svc := newTestService(store)
	ownerID := uuid.New()

	a, err := svc.Create(context.Background(), ownerID, "usd", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.Equal(t, "USD", a.CurrencyCode, "currency code is normalized to upper case")
	assert.True(t, a.Balance.Equal(decimal.NewFromInt(10)))

	stored, ok := store.Account(a.ID)
	require.True(t, ok)
	assert.Equal(t, ownerID, stored.UserID)
}

func TestCreateRejectsNegativeInitialBalance(t *testing.T) {
	store := fixtures.NewStore()
	store.SeedCurrency(domain.Currency{Code: "USD", Name: "US Dollar", Rate: decimal.NewFromInt(75)})
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), uuid.New(), "USD", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCreateRequiresStoredCurrency(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), uuid.New(), "USD", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrCurrencyNotFound)
}

func TestCreateRejectsSecondAccountInSameCurrency(t *testing.T) {
	store := fixtures.NewStore()
	store.SeedCurrency(domain.Currency{Code: "USD", Name: "US Dollar", Rate: decimal.NewFromInt(75)})
	svc := newTestService(store)
	ownerID := uuid.New()

	_, err := svc.Create(context.Background(), ownerID, "USD", decimal.Zero)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), ownerID, "USD", decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrDuplicateAccount)

	// A different user may hold the same currency.
	_, err = svc.Create(context.Background(), uuid.New(), "USD", decimal.Zero)
	assert.NoError(t, err)
}

func TestGetHidesForeignAccounts(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)
	accountID := uuid.New()
	store.SeedAccount(domain.Account{
		ID:           accountID,
		UserID:       uuid.New(),
		CurrencyCode: "RUB",
		Balance:      decimal.NewFromInt(100),
	})

	_, err := svc.Get(context.Background(), accountID, uuid.New())
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestCloseRemovesAccountAndHistory(t *testing.T) {
	store := fixtures.NewStore()
	svc := newTestService(store)
	ownerID := uuid.New()
	accountID := uuid.New()
	store.SeedAccount(domain.Account{
		ID:           accountID,
		UserID:       ownerID,
		CurrencyCode: "RUB",
		Balance:      decimal.NewFromInt(100),
	})

	require.NoError(t, svc.Close(context.Background(), accountID, ownerID))
	_, ok := store.Account(accountID)
	assert.False(t, ok)

	err := svc.Close(context.Background(), accountID, ownerID)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}
