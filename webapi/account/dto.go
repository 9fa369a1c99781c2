package account

import (
	"time"

	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	CurrencyCode string          `json:"currency_code" validate:"required,len=3"`
	Balance      decimal.Decimal `json:"balance"`
}

// OperationRequest covers deposits, withdrawals and transfers. A present
// recipient_account turns the request into a transfer; amount_diff must then
// be negative, the money leaving the sender's account.
type OperationRequest struct {
	AmountDiff       decimal.Decimal `json:"amount_diff" validate:"required"`
	Description      string          `json:"description"`
	RecipientAccount *uuid.UUID      `json:"recipient_account"`
}

type AccountResponse struct {
	ID           uuid.UUID       `json:"id"`
	CurrencyCode string          `json:"currency_code"`
	Balance      decimal.Decimal `json:"balance"`
}

type OperationResponse struct {
	ID          uuid.UUID       `json:"id"`
	AccountID   uuid.UUID       `json:"account_id"`
	AmountDiff  decimal.Decimal `json:"amount_diff"`
	CreatedAt   time.Time       `json:"created_at"`
	Description string          `json:"description"`
}

func toAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{ID: a.ID, CurrencyCode: a.CurrencyCode, Balance: a.Balance}
}

func toOperationResponse(op *domain.Operation) OperationResponse {
	return OperationResponse{
		ID:          op.ID,
		AccountID:   op.AccountID,
		AmountDiff:  op.AmountDiff,
		CreatedAt:   op.CreatedAt,
		Description: op.Description,
	}
}

func toOperationResponses(ops []domain.Operation) []OperationResponse {
	out := make([]OperationResponse, 0, len(ops))
	for i := range ops {
		out = append(out, toOperationResponse(&ops[i]))
	}
	return out
}
