package domain

import "github.com/shopspring/decimal"

// BaseCurrencyCode is the currency all exchange rates are expressed against.
// It is pinned at rate 1 and never present in the external feed.
const BaseCurrencyCode = "RUB"

// BaseCurrencyName is the display name used when the base currency is created.
const BaseCurrencyName = "Russian Ruble"

// Currency is a stored currency with its spot rate relative to the base
// currency. Currencies are never deleted; rates are overwritten by the
// refresh job or on explicit creation.
type Currency struct {
	Code string // three-letter char code, e.g. RUB, USD
	Name string
	Rate decimal.Decimal
}

// IsBase reports whether this is the base currency.
func (c *Currency) IsBase() bool {
	return c.Code == BaseCurrencyCode
}
