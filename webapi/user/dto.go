package user

import (
	"errors"
	"strings"

	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Password   string `json:"password" validate:"required,min=8"`
}

// ValidatePassword enforces the password policy: at least one uppercase
// letter and one digit on top of the length check.
func (r RegisterRequest) ValidatePassword() error {
	if !strings.ContainsAny(r.Password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return errors.New("password must contain at least one uppercase character")
	}
	if !strings.ContainsAny(r.Password, "0123456789") {
		return errors.New("password must contain at least one number")
	}
	return nil
}

type ConfirmRequest struct {
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

type UpdateNamesRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	MiddleName string `json:"middle_name"`
}

type UpdateEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type UpdatePhoneRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	MiddleName string    `json:"middle_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
}

func toResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		MiddleName: u.MiddleName,
		Email:      u.Email,
		Phone:      u.Phone,
	}
}
