// Package currency exposes currency catalogue endpoints.
package currency

import (
	"github.com/ShantamRU/extraordinary-bank/pkg/config"
	currencysvc "github.com/ShantamRU/extraordinary-bank/pkg/service/currency"
	"github.com/ShantamRU/extraordinary-bank/webapi/common"
	"github.com/ShantamRU/extraordinary-bank/webapi/middleware"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, currencySvc *currencysvc.Service, cfg *config.AppConfig) {
	guard := middleware.JwtProtected(cfg.Jwt)
	app.Post("/currencies", guard, Create(currencySvc))
	app.Get("/currencies", guard, List(currencySvc))
	app.Post("/currencies/refresh", guard, Refresh(currencySvc))
}

// Create registers a currency by its char code, sourcing name and rate from
// the external feed.
func Create(currencySvc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[CreateCurrencyRequest](c)
		if input == nil {
			return err
		}
		cur, err := currencySvc.Create(c.Context(), input.CharCode)
		if err != nil {
			return common.DomainErrorJSON(c, "Failed to create currency", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Currency created", toResponse(cur))
	}
}

// List returns the stored currency catalogue.
func List(currencySvc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		currencies, err := currencySvc.List(c.Context())
		if err != nil {
			return common.DomainErrorJSON(c, "Failed to list currencies", err)
		}
		out := make([]CurrencyResponse, 0, len(currencies))
		for i := range currencies {
			out = append(out, toResponse(&currencies[i]))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "OK", out)
	}
}

// Refresh re-reads the external feed and overwrites stored rates.
func Refresh(currencySvc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := currencySvc.Refresh(c.Context()); err != nil {
			return common.DomainErrorJSON(c, "Failed to refresh rates", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Rates refreshed", nil)
	}
}
