// Package account implements account lifecycle: opening, lookup and closing
// of per-currency balances.
package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/ShantamRU/extraordinary-bank/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// Create opens an account for the owner in the given currency. The currency
// must already be stored, the initial balance must not be negative, and the
// owner must not already hold an account in that currency.
func (s *Service) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	currencyCode string,
	initialBalance decimal.Decimal,
) (*domain.Account, error) {
	if initialBalance.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	currencyCode = strings.ToUpper(currencyCode)

	var created *domain.Account
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Currencies().Get(ctx, currencyCode); err != nil {
			return err
		}
		_, err := uow.Accounts().GetByOwnerAndCurrency(ctx, ownerID, currencyCode)
		switch {
		case err == nil:
			return domain.ErrDuplicateAccount
		case !errors.Is(err, domain.ErrAccountNotFound):
			return err
		}
		a := &domain.Account{
			ID:           uuid.New(),
			UserID:       ownerID,
			CurrencyCode: currencyCode,
			Balance:      initialBalance,
		}
		if err := uow.Accounts().Create(ctx, a); err != nil {
			return err
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account created", "accountID", created.ID, "currency", currencyCode)
	return created, nil
}

// Get returns the account only when it belongs to ownerID. A foreign account
// is indistinguishable from a missing one.
func (s *Service) Get(ctx context.Context, id, ownerID uuid.UUID) (*domain.Account, error) {
	a, err := s.uow.Accounts().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.UserID != ownerID {
		return nil, domain.ErrAccountNotFound
	}
	return a, nil
}

// GetAny returns the account without an ownership check. Transfers use it to
// resolve recipient accounts belonging to other users.
func (s *Service) GetAny(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return s.uow.Accounts().Get(ctx, id)
}

// ListByOwner returns all accounts held by the owner.
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Account, error) {
	return s.uow.Accounts().ListByOwner(ctx, ownerID)
}

// Close deletes the account and cascades its operations. There is no
// archival; closing is a hard delete.
func (s *Service) Close(ctx context.Context, id, ownerID uuid.UUID) error {
	if err := s.uow.Accounts().Delete(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info("account closed", "accountID", id)
	return nil
}
