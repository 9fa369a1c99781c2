package fixtures

import (
	"context"
	"errors"

	"github.com/ShantamRU/extraordinary-bank/pkg/repository"
)

// ErrInjected is returned by failure-injection points.
var ErrInjected = errors.New("injected failure")

// UoW is the in-memory unit of work. Do snapshots the store before running fn
// and restores it when fn fails, mirroring transaction rollback. Nested Do
// calls join the outer transaction.
type UoW struct {
	store *Store
	depth int
}

func NewUoW(store *Store) *UoW {
	return &UoW{store: store}
}

func (u *UoW) Do(_ context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.depth > 0 {
		return fn(u)
	}

	u.store.mu.Lock()
	snapshot := u.store.snapshotLocked()
	u.store.mu.Unlock()

	err := fn(&UoW{store: u.store, depth: u.depth + 1})
	if err != nil {
		u.store.mu.Lock()
		u.store.restoreLocked(snapshot)
		u.store.mu.Unlock()
	}
	return err
}

func (u *UoW) Currencies() repository.CurrencyRepository {
	return &currencyRepo{store: u.store}
}

func (u *UoW) Accounts() repository.AccountRepository {
	return &accountRepo{store: u.store}
}

func (u *UoW) Operations() repository.OperationRepository {
	return &operationRepo{store: u.store}
}

func (u *UoW) Users() repository.UserRepository {
	return &userRepo{store: u.store}
}

func (u *UoW) UpdateRequests() repository.UpdateRequestRepository {
	return &updateRequestRepo{store: u.store}
}

var _ repository.UnitOfWork = (*UoW)(nil)
