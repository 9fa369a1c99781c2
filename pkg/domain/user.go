package domain

import (
	"strings"

	"github.com/google/uuid"
)

// User is a registered bank customer. A non-nil ConfirmationCode means the
// email address has not been confirmed yet.
type User struct {
	ID               uuid.UUID
	FirstName        string
	LastName         string
	MiddleName       string
	Email            string
	Phone            string
	Password         string // bcrypt hash
	ConfirmationCode *string
}

// Confirmed reports whether the user has confirmed their email address.
func (u *User) Confirmed() bool {
	return u.ConfirmationCode == nil
}

// FullName builds the display name used in operation descriptions.
func (u *User) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{u.FirstName, u.LastName, u.MiddleName} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// UpdateRequest is a pending email or phone change awaiting confirmation.
// Conditions holds the column values to apply once the code is presented.
type UpdateRequest struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Conditions       map[string]string
	ConfirmationCode string
}
