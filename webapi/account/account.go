// Package account exposes account lifecycle and ledger endpoints.
package account

import (
	"github.com/ShantamRU/extraordinary-bank/pkg/config"
	accountsvc "github.com/ShantamRU/extraordinary-bank/pkg/service/account"
	authsvc "github.com/ShantamRU/extraordinary-bank/pkg/service/auth"
	ledgersvc "github.com/ShantamRU/extraordinary-bank/pkg/service/ledger"
	"github.com/ShantamRU/extraordinary-bank/webapi/common"
	"github.com/ShantamRU/extraordinary-bank/webapi/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func Routes(
	app *fiber.App,
	accountSvc *accountsvc.Service,
	ledgerSvc *ledgersvc.Service,
	authSvc *authsvc.Service,
	cfg *config.AppConfig,
) {
	guard := middleware.JwtProtected(cfg.Jwt)
	app.Post("/accounts", guard, Create(accountSvc, authSvc))
	app.Get("/accounts", guard, List(accountSvc, authSvc))
	app.Get("/accounts/:id", guard, Get(accountSvc, authSvc))
	app.Delete("/accounts/:id", guard, Close(accountSvc, authSvc))
	app.Post("/accounts/:id/operations", guard, AppendOperation(ledgerSvc, authSvc))
	app.Get("/accounts/:id/operations", guard, ListOperations(accountSvc, ledgerSvc, authSvc))
	app.Get("/operations", guard, ListAllOperations(ledgerSvc, authSvc))
}

// Create opens an account in the given currency with an optional starting
// balance.
func Create(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.Create(c.Context(), userID, input.CurrencyCode, input.Balance)
		if err != nil {
			return common.DomainErrorJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", toAccountResponse(a))
	}
}

// List returns all accounts of the authenticated user.
func List(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		accounts, err := accountSvc.ListByOwner(c.Context(), userID)
		if err != nil {
			return common.DomainErrorJSON(c, "Failed to list accounts", err)
		}
		out := make([]AccountResponse, 0, len(accounts))
		for i := range accounts {
			out = append(out, toAccountResponse(&accounts[i]))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "OK", out)
	}
}

// Get returns one of the user's accounts by id.
func Get(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account id", err.Error())
		}
		a, err := accountSvc.Get(c.Context(), accountID, userID)
		if err != nil {
			return common.DomainErrorJSON(c, "Failed to load account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "OK", toAccountResponse(a))
	}
}

// Close deletes the account together with its operation history.
func Close(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account id", err.Error())
		}
		if err := accountSvc.Close(c.Context(), accountID, userID); err != nil {
			return common.DomainErrorJSON(c, "Failed to close account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account closed", nil)
	}
}

// AppendOperation records a deposit, withdrawal or transfer against the
// account. A transfer is requested by setting recipient_account and a
// negative amount_diff.
func AppendOperation(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account id", err.Error())
		}
		input, err := common.BindAndValidate[OperationRequest](c)
		if input == nil {
			return err
		}

		if input.RecipientAccount != nil {
			if !input.AmountDiff.IsNegative() {
				return common.ErrorResponseJSON(c, fiber.StatusBadRequest,
					"Invalid transfer amount", "amount_diff must be negative for transfers")
			}
			senderOp, recipientOp, err := ledgerSvc.Transfer(
				c.Context(), userID, accountID, *input.RecipientAccount, input.AmountDiff)
			if err != nil {
				return common.DomainErrorJSON(c, "Failed to transfer", err)
			}
			return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transfer completed", fiber.Map{
				"sender_operation":    toOperationResponse(senderOp),
				"recipient_operation": toOperationResponse(recipientOp),
			})
		}

		op, err := ledgerSvc.Adjust(c.Context(), userID, accountID, input.AmountDiff, input.Description)
		if err != nil {
			return common.DomainErrorJSON(c, "Failed to record operation", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Operation recorded", toOperationResponse(op))
	}
}

// ListOperations returns the account's operation history in chronological
// order.
func ListOperations(
	accountSvc *accountsvc.Service,
	ledgerSvc *ledgersvc.Service,
	authSvc *authsvc.Service,
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account id", err.Error())
		}
		if _, err := accountSvc.Get(c.Context(), accountID, userID); err != nil {
			return common.DomainErrorJSON(c, "Failed to load account", err)
		}
		ops, err := ledgerSvc.ListByAccount(c.Context(), accountID)
		if err != nil {
			return common.DomainErrorJSON(c, "Failed to list operations", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "OK", toOperationResponses(ops))
	}
}

// ListAllOperations returns operation histories of every account the user
// holds, keyed by account id.
func ListAllOperations(ledgerSvc *ledgersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}
		byAccount, err := ledgerSvc.ListByOwner(c.Context(), userID)
		if err != nil {
			return common.DomainErrorJSON(c, "Failed to list operations", err)
		}
		out := make(map[string][]OperationResponse, len(byAccount))
		for id, ops := range byAccount {
			out[id.String()] = toOperationResponses(ops)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "OK", out)
	}
}
