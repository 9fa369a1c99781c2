package domain

import "errors"

var (
	// ErrCurrencyNotFound is returned when a currency code is not stored in the system.
	ErrCurrencyNotFound = errors.New("currency not found")

	// ErrInvalidCurrency is returned when the external rate source does not know the requested code.
	ErrInvalidCurrency = errors.New("invalid currency")

	// ErrAccountNotFound is returned when an account does not exist or is not visible to the caller.
	ErrAccountNotFound = errors.New("account not found")

	// ErrUserNotFound is returned when a user record cannot be resolved.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidAmount is returned when an account is opened with a negative initial balance.
	ErrInvalidAmount = errors.New("amount must not be negative")

	// ErrDuplicateAccount is returned when the owner already holds an account in the currency.
	ErrDuplicateAccount = errors.New("account with the same currency already exists")

	// ErrNotOwner is returned when a user acts on an account they do not own.
	ErrNotOwner = errors.New("not owner")

	// ErrRateSourceUnavailable is returned when the external rate feed cannot be
	// fetched or parsed. The caller aborts without partial writes.
	ErrRateSourceUnavailable = errors.New("rate source unavailable")

	// ErrEmailTaken is returned on registration with an email already in use.
	ErrEmailTaken = errors.New("email is already in use")

	// ErrPhoneTaken is returned on registration with a phone number already in use.
	ErrPhoneTaken = errors.New("phone number is already in use")

	// ErrInvalidCredentials is returned on a failed login or password change.
	ErrInvalidCredentials = errors.New("incorrect identity or password")

	// ErrUnconfirmedUser is returned when an unconfirmed user attempts to log in.
	ErrUnconfirmedUser = errors.New("user email not confirmed yet")

	// ErrInvalidConfirmationCode is returned when a confirmation code matches nothing.
	ErrInvalidConfirmationCode = errors.New("incorrect confirmation code")
)
