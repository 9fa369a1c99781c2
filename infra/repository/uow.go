// Package repository wires the GORM repositories into a unit of work.
package repository

import (
	"context"

	accountrepo "github.com/ShantamRU/extraordinary-bank/infra/repository/account"
	currencyrepo "github.com/ShantamRU/extraordinary-bank/infra/repository/currency"
	operationrepo "github.com/ShantamRU/extraordinary-bank/infra/repository/operation"
	userrepo "github.com/ShantamRU/extraordinary-bank/infra/repository/user"
	"github.com/ShantamRU/extraordinary-bank/pkg/repository"
	"gorm.io/gorm"
)

// UoW provides the transaction boundary and repository access in one
// abstraction. Repositories obtained inside Do share the transaction
// session, so multi-row mutations commit or roll back together.
type UoW struct {
	db *gorm.DB
	tx *gorm.DB
}

func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn inside a gorm transaction. A Do nested inside a transaction
// joins it rather than opening a second one.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx})
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UoW) Currencies() repository.CurrencyRepository {
	return currencyrepo.New(u.session())
}

func (u *UoW) Accounts() repository.AccountRepository {
	return accountrepo.New(u.session())
}

func (u *UoW) Operations() repository.OperationRepository {
	return operationrepo.New(u.session())
}

func (u *UoW) Users() repository.UserRepository {
	return userrepo.New(u.session())
}

func (u *UoW) UpdateRequests() repository.UpdateRequestRepository {
	return userrepo.NewUpdateRequests(u.session())
}

var _ repository.UnitOfWork = (*UoW)(nil)
