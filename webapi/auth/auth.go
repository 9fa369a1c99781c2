// Package auth exposes the login endpoint.
package auth

import (
	authsvc "github.com/ShantamRU/extraordinary-bank/pkg/service/auth"
	"github.com/ShantamRU/extraordinary-bank/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/login", Login(authSvc))
}

// Login checks credentials by email or phone and issues a bearer token.
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginRequest](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(c.Context(), input.Identity, input.Password)
		if err != nil {
			return common.DomainErrorJSON(c, "Login failed", err)
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusInternalServerError,
				"Failed to issue token", err.Error())
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Login successful",
			LoginResponse{AccessToken: token, TokenType: "bearer"})
	}
}
