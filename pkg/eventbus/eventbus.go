// Package eventbus declares the contract for publishing ledger events to
// interested consumers after a successful commit.
package eventbus

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationEvent describes a committed ledger operation.
type OperationEvent struct {
	OperationID uuid.UUID       `json:"operation_id"`
	AccountID   uuid.UUID       `json:"account_id"`
	AmountDiff  decimal.Decimal `json:"amount_diff"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Publisher emits operation events. Publishing is best-effort: a failure is
// logged by the caller and never rolls back the committed operation.
type Publisher interface {
	Publish(ctx context.Context, event OperationEvent) error
}
