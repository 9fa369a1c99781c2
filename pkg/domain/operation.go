package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Operation is an immutable ledger entry recording a single balance delta.
// Operations are ordered by CreatedAt per account; insertion order breaks
// ties. Deleting an account cascades to its operations.
type Operation struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	AmountDiff  decimal.Decimal
	CreatedAt   time.Time
	Description string
}
