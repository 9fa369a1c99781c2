// Package model holds the GORM table definitions backing the domain.
package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// User is a registered customer. ConfirmationCode is NULL once the email is
// confirmed.
type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName        string    `gorm:"size:100"`
	LastName         string    `gorm:"size:100"`
	MiddleName       string    `gorm:"size:100"`
	Email            string    `gorm:"uniqueIndex;not null;size:255"`
	Phone            string    `gorm:"uniqueIndex;not null;size:32"`
	Password         string    `gorm:"not null"`
	ConfirmationCode *string   `gorm:"size:16"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// UpdateRequest is a pending email/phone change. Conditions is a JSON object
// of column values to apply on confirmation.
type UpdateRequest struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	User             User      `gorm:"foreignKey:UserID"`
	Conditions       []byte    `gorm:"type:jsonb;not null"`
	ConfirmationCode string    `gorm:"not null;size:16"`
	CreatedAt        time.Time
}

// Currency keys on the three-letter char code; the rate is relative to the
// base currency. Rows are never deleted.
type Currency struct {
	Code      string          `gorm:"type:varchar(3);primaryKey"`
	Name      string          `gorm:"not null;size:255"`
	Rate      decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	UpdatedAt time.Time
}

// Account enforces at most one account per (user, currency) pair through the
// composite unique index. Deleting an account cascades to its operations.
type Account struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_accounts_owner_currency"`
	User         User            `gorm:"foreignKey:UserID"`
	CurrencyCode string          `gorm:"type:varchar(3);not null;uniqueIndex:idx_accounts_owner_currency"`
	Currency     Currency        `gorm:"foreignKey:CurrencyCode;references:Code"`
	Balance      decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	Operations   []Operation     `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Operation rows are immutable. Seq preserves insertion order as the
// tiebreak when two operations share a timestamp.
type Operation struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Seq         int64           `gorm:"autoIncrement;uniqueIndex"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	AmountDiff  decimal.Decimal `gorm:"type:numeric(20,8);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	Description string
}

// Migrate creates or updates all tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&UpdateRequest{},
		&Currency{},
		&Account{},
		&Operation{},
	)
}
