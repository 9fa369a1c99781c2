// Package user exposes registration, confirmation and profile endpoints.
package user

import (
	"github.com/ShantamRU/extraordinary-bank/pkg/config"
	authsvc "github.com/ShantamRU/extraordinary-bank/pkg/service/auth"
	usersvc "github.com/ShantamRU/extraordinary-bank/pkg/service/user"
	"github.com/ShantamRU/extraordinary-bank/webapi/common"
	"github.com/ShantamRU/extraordinary-bank/webapi/middleware"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.AppConfig) {
	app.Post("/users", Register(userSvc))
	app.Post("/users/confirm", Confirm(userSvc))
	app.Get("/users/me", middleware.JwtProtected(cfg.Jwt), Me(userSvc, authSvc))
	app.Put("/users/me", middleware.JwtProtected(cfg.Jwt), UpdateNames(userSvc, authSvc))
	app.Post("/users/me/password", middleware.JwtProtected(cfg.Jwt), UpdatePassword(userSvc, authSvc))
	app.Post("/users/me/email", middleware.JwtProtected(cfg.Jwt), RequestEmailChange(userSvc, authSvc))
	app.Post("/users/me/phone", middleware.JwtProtected(cfg.Jwt), RequestPhoneChange(userSvc, authSvc))
	app.Post("/users/me/confirm", middleware.JwtProtected(cfg.Jwt), ConfirmUpdate(userSvc, authSvc))
}

// Register creates a new unconfirmed user and sends the confirmation code.
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err
		}
		if err := input.ValidatePassword(); err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Validation failed", err.Error())
		}
		u, err := userSvc.Register(c.Context(), usersvc.RegisterInput{
			FirstName:  input.FirstName,
			LastName:   input.LastName,
			MiddleName: input.MiddleName,
			Email:      input.Email,
			Phone:      input.Phone,
			Password:   input.Password,
		})
		if err != nil {
			return common.DomainErrorJSON(c, "Failed to register user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User registered",
			fiber.Map{"user_id": u.ID})
	}
}

// Confirm finishes registration with the emailed code.
func Confirm(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[ConfirmRequest](c)
		if input == nil {
			return err
		}
		userID, err := userSvc.ConfirmEmail(c.Context(), input.ConfirmationCode)
		if err != nil {
			return common.DomainErrorJSON(c, "Failed to confirm email", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Email confirmed",
			fiber.Map{"user_id": userID})
	}
}

// Me returns the authenticated user's profile.
func Me(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		u, err := userSvc.Get(c.Context(), userID)
		if err != nil {
			return common.DomainErrorJSON(c, "Failed to load user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "OK", toResponse(u))
	}
}

// UpdateNames replaces the user's display name fields.
func UpdateNames(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := common.BindAndValidate[UpdateNamesRequest](c)
		if input == nil {
			return err
		}
		if err := userSvc.UpdateNames(c.Context(), userID,
			input.FirstName, input.LastName, input.MiddleName); err != nil {
			return common.DomainErrorJSON(c, "Failed to update user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User updated", nil)
	}
}

// UpdatePassword changes the password after verifying the old one.
func UpdatePassword(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := common.BindAndValidate[UpdatePasswordRequest](c)
		if input == nil {
			return err
		}
		if err := userSvc.UpdatePassword(c.Context(), userID,
			input.OldPassword, input.NewPassword); err != nil {
			return common.DomainErrorJSON(c, "Failed to update password", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Password updated", nil)
	}
}

// RequestEmailChange stores a pending email change to confirm by code.
func RequestEmailChange(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := common.BindAndValidate[UpdateEmailRequest](c)
		if input == nil {
			return err
		}
		if err := userSvc.RequestEmailChange(c.Context(), userID, input.Email); err != nil {
			return common.DomainErrorJSON(c, "Failed to request email change", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Confirmation code sent", nil)
	}
}

// RequestPhoneChange stores a pending phone change to confirm by code.
func RequestPhoneChange(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := common.BindAndValidate[UpdatePhoneRequest](c)
		if input == nil {
			return err
		}
		if err := userSvc.RequestPhoneChange(c.Context(), userID, input.Phone); err != nil {
			return common.DomainErrorJSON(c, "Failed to request phone change", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Confirmation code sent", nil)
	}
}

// ConfirmUpdate applies a pending email/phone change by its code.
func ConfirmUpdate(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := common.BindAndValidate[ConfirmRequest](c)
		if input == nil {
			return err
		}
		if err := userSvc.ConfirmUpdate(c.Context(), userID, input.ConfirmationCode); err != nil {
			return common.DomainErrorJSON(c, "Failed to confirm update", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Update applied", nil)
	}
}
