// Package repository defines the persistence contracts the services depend
// on. Implementations live under infra/repository; tests use the in-memory
// fakes from internal/fixtures.
package repository

import (
	"context"

	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyRepository stores currencies and their spot rates.
type CurrencyRepository interface {
	Create(ctx context.Context, c *domain.Currency) error
	// Get returns domain.ErrCurrencyNotFound when the code is not stored.
	Get(ctx context.Context, code string) (*domain.Currency, error)
	List(ctx context.Context) ([]domain.Currency, error)
	UpdateRate(ctx context.Context, code string, rate decimal.Decimal) error
}

// AccountRepository stores per-user, per-currency balances.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	// Get returns domain.ErrAccountNotFound when the account does not exist.
	Get(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByOwnerAndCurrency(ctx context.Context, ownerID uuid.UUID, code string) (*domain.Account, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error)
	// AddToBalance applies the delta as a single conditional update so the
	// store serializes concurrent writers on the account row.
	AddToBalance(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error
	// Delete removes the account and, through the schema, its operations.
	// Returns domain.ErrAccountNotFound when the owner does not hold it.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// OperationRepository appends and lists immutable ledger entries.
type OperationRepository interface {
	Create(ctx context.Context, op *domain.Operation) error
	// ListByAccount returns operations ordered by ascending CreatedAt,
	// insertion order breaking ties.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Operation, error)
}

// UserRepository stores registered users and their pending update requests.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// GetByIdentity resolves a user by email or phone.
	GetByIdentity(ctx context.Context, identity string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
	// ConfirmByCode clears the confirmation code and returns the confirmed
	// user's id, or domain.ErrInvalidConfirmationCode.
	ConfirmByCode(ctx context.Context, code string) (uuid.UUID, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	UpdateNames(ctx context.Context, id uuid.UUID, first, last, middle string) error
	// ApplyUpdate writes the given column values onto the user row.
	ApplyUpdate(ctx context.Context, id uuid.UUID, conditions map[string]string) error
}

// UpdateRequestRepository stores pending email/phone change requests.
type UpdateRequestRepository interface {
	Create(ctx context.Context, r *domain.UpdateRequest) error
	// Take deletes the request matching (userID, code) and returns its
	// conditions, or domain.ErrInvalidConfirmationCode.
	Take(ctx context.Context, userID uuid.UUID, code string) (map[string]string, error)
}
