package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Account is a per-user, per-currency balance. At most one account exists per
// (owner, currency) pair. The balance may go negative once the account is
// open; only the initial balance is required to be non-negative.
type Account struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	CurrencyCode string
	Balance      decimal.Decimal
}
