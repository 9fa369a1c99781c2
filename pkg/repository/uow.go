package repository

import "context"

// UnitOfWork is the transaction boundary shared by all repositories. Every
// repository obtained inside Do uses the same store session, so a multi-row
// mutation (ledger append, cross-account transfer) commits or rolls back as
// one unit. Accessors called outside Do operate on the base session.
type UnitOfWork interface {
	// Do executes fn within a transaction. A non-nil error from fn rolls the
	// whole transaction back and is returned unchanged.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Currencies() CurrencyRepository
	Accounts() AccountRepository
	Operations() OperationRepository
	Users() UserRepository
	UpdateRequests() UpdateRequestRepository
}
