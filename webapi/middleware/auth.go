// Package middleware provides the JWT guard for protected routes.
package middleware

import (
	"github.com/ShantamRU/extraordinary-bank/pkg/config"
	"github.com/ShantamRU/extraordinary-bank/webapi/common"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JwtProtected validates the Bearer token and stores the parsed token under
// c.Locals("user").
func JwtProtected(cfg config.JwtConfig) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "missing or malformed JWT" {
		return common.ErrorResponseJSON(c, fiber.StatusBadRequest,
			"Missing or malformed JWT", err.Error())
	}
	return common.ErrorResponseJSON(c, fiber.StatusUnauthorized,
		"Invalid or expired JWT", err.Error())
}
