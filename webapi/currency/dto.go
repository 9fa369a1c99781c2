package currency

import (
	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/shopspring/decimal"
)

type CreateCurrencyRequest struct {
	CharCode string `json:"char_code" validate:"required,len=3"`
}

type CurrencyResponse struct {
	CharCode string          `json:"char_code"`
	Name     string          `json:"name"`
	Rate     decimal.Decimal `json:"rate"`
}

func toResponse(cur *domain.Currency) CurrencyResponse {
	return CurrencyResponse{CharCode: cur.Code, Name: cur.Name, Rate: cur.Rate}
}
