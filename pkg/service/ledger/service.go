// Package ledger implements the append-only operation log and the transfer
// orchestration on top of it. Every balance mutation pairs an immutable
// operation row with an atomic balance update inside one transaction.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/ShantamRU/extraordinary-bank/pkg/eventbus"
	"github.com/ShantamRU/extraordinary-bank/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Service struct {
	uow       repository.UnitOfWork
	publisher eventbus.Publisher // optional
	logger    *slog.Logger
}

func New(uow repository.UnitOfWork, publisher eventbus.Publisher, logger *slog.Logger) *Service {
	return &Service{uow: uow, publisher: publisher, logger: logger}
}

// Append records an operation and applies its delta to the account balance.
// Both writes happen in one transaction: an operation row without the
// matching balance change (or vice versa) can never persist.
func (s *Service) Append(
	ctx context.Context,
	accountID uuid.UUID,
	delta decimal.Decimal,
	description string,
) (*domain.Operation, error) {
	var op *domain.Operation
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := uow.Accounts().Get(ctx, accountID); err != nil {
			return err
		}
		var err error
		op, err = appendOne(ctx, uow, accountID, delta, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, op)
	return op, nil
}

// Adjust is a single-account deposit or withdrawal: ownership is verified,
// then the literal delta is appended. No currency conversion happens.
func (s *Service) Adjust(
	ctx context.Context,
	ownerID, accountID uuid.UUID,
	delta decimal.Decimal,
	description string,
) (*domain.Operation, error) {
	var op *domain.Operation
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		a, err := uow.Accounts().Get(ctx, accountID)
		if err != nil {
			return err
		}
		if a.UserID != ownerID {
			return domain.ErrAccountNotFound
		}
		op, err = appendOne(ctx, uow, accountID, delta, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("account adjusted", "accountID", accountID, "delta", delta)
	s.publish(ctx, op)
	return op, nil
}

// Transfer moves value from the sender's account to any user's account,
// converting between currencies at the current spot rates. The recipient
// delta is -delta * senderRate / recipientRate, so both legs carry the same
// value in the base currency with opposite signs.
//
// All four row mutations (two operation inserts, two balance updates) commit
// in a single transaction; a failure anywhere in the sequence leaves both
// accounts untouched.
func (s *Service) Transfer(
	ctx context.Context,
	ownerID, senderAccountID, recipientAccountID uuid.UUID,
	delta decimal.Decimal,
) (senderOp, recipientOp *domain.Operation, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		sender, err := uow.Accounts().Get(ctx, senderAccountID)
		if err != nil {
			return err
		}
		if sender.UserID != ownerID {
			return domain.ErrAccountNotFound
		}
		senderCur, err := uow.Currencies().Get(ctx, sender.CurrencyCode)
		if err != nil {
			return err
		}
		recipient, err := uow.Accounts().Get(ctx, recipientAccountID)
		if err != nil {
			return err
		}
		recipientCur, err := uow.Currencies().Get(ctx, recipient.CurrencyCode)
		if err != nil {
			return err
		}
		senderUser, err := uow.Users().Get(ctx, sender.UserID)
		if err != nil {
			return err
		}
		recipientUser, err := uow.Users().Get(ctx, recipient.UserID)
		if err != nil {
			return err
		}

		// Spot rates are a best-effort snapshot read at this moment.
		recipientDelta := delta.Neg().Mul(senderCur.Rate).Div(recipientCur.Rate)

		senderDesc := fmt.Sprintf("Money transfer of %s %s. Recipient: %s.",
			delta.Abs(), senderCur.Code, recipientUser.FullName())
		recipientDesc := fmt.Sprintf("Money transfer of %s %s. Sender: %s.",
			recipientDelta.Abs(), recipientCur.Code, senderUser.FullName())

		senderOp, err = appendOne(ctx, uow, sender.ID, delta, senderDesc)
		if err != nil {
			return err
		}
		recipientOp, err = appendOne(ctx, uow, recipient.ID, recipientDelta, recipientDesc)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("transfer completed",
		"sender", senderAccountID, "recipient", recipientAccountID, "delta", delta)
	s.publish(ctx, senderOp)
	s.publish(ctx, recipientOp)
	return senderOp, recipientOp, nil
}

// ListByAccount returns the account's operations in ascending timestamp
// order, insertion order breaking ties.
func (s *Service) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]domain.Operation, error) {
	return s.uow.Operations().ListByAccount(ctx, accountID)
}

// ListByOwner returns the ordered operation list of every account the owner
// holds, keyed by account id.
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) (map[uuid.UUID][]domain.Operation, error) {
	accounts, err := s.uow.Accounts().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	result := make(map[uuid.UUID][]domain.Operation, len(accounts))
	for _, a := range accounts {
		ops, err := s.uow.Operations().ListByAccount(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		result[a.ID] = ops
	}
	return result, nil
}

// appendOne inserts the operation row and applies the delta to the balance
// using the repositories bound to the caller's transaction.
func appendOne(
	ctx context.Context,
	uow repository.UnitOfWork,
	accountID uuid.UUID,
	delta decimal.Decimal,
	description string,
) (*domain.Operation, error) {
	op := &domain.Operation{
		ID:          uuid.New(),
		AccountID:   accountID,
		AmountDiff:  delta,
		CreatedAt:   time.Now().UTC(),
		Description: description,
	}
	if err := uow.Operations().Create(ctx, op); err != nil {
		return nil, err
	}
	if err := uow.Accounts().AddToBalance(ctx, accountID, delta); err != nil {
		return nil, err
	}
	return op, nil
}

func (s *Service) publish(ctx context.Context, op *domain.Operation) {
	if s.publisher == nil || op == nil {
		return
	}
	event := eventbus.OperationEvent{
		OperationID: op.ID,
		AccountID:   op.AccountID,
		AmountDiff:  op.AmountDiff,
		Description: op.Description,
		CreatedAt:   op.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish operation event", "operationID", op.ID, "error", err)
	}
}
