// Package webapi assembles the Fiber application and its routes.
package webapi

import (
	"time"

	"github.com/ShantamRU/extraordinary-bank/pkg/config"
	accountsvc "github.com/ShantamRU/extraordinary-bank/pkg/service/account"
	authsvc "github.com/ShantamRU/extraordinary-bank/pkg/service/auth"
	currencysvc "github.com/ShantamRU/extraordinary-bank/pkg/service/currency"
	ledgersvc "github.com/ShantamRU/extraordinary-bank/pkg/service/ledger"
	usersvc "github.com/ShantamRU/extraordinary-bank/pkg/service/user"
	"github.com/ShantamRU/extraordinary-bank/webapi/account"
	"github.com/ShantamRU/extraordinary-bank/webapi/auth"
	"github.com/ShantamRU/extraordinary-bank/webapi/currency"
	"github.com/ShantamRU/extraordinary-bank/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Services groups everything the HTTP layer depends on.
type Services struct {
	Account  *accountsvc.Service
	Auth     *authsvc.Service
	Currency *currencysvc.Service
	Ledger   *ledgersvc.Service
	User     *usersvc.Service
}

// NewApp builds the Fiber app with panic recovery, rate limiting and all
// routes registered.
func NewApp(svcs Services, cfg *config.AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "extraordinary-bank",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	app.Use(recover.New())
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: time.Minute,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth.Routes(app, svcs.Auth)
	user.Routes(app, svcs.User, svcs.Auth, cfg)
	account.Routes(app, svcs.Account, svcs.Ledger, svcs.Auth, cfg)
	currency.Routes(app, svcs.Currency, cfg)

	return app
}
