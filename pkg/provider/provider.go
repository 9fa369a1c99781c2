// Package provider declares the contracts for collaborators outside the
// core: the external exchange-rate feed, the confirmation-code channel and
// the rate snapshot cache.
package provider

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RateInfo is one entry of the external rate table: the display name and the
// spot rate relative to the base currency.
type RateInfo struct {
	Code string          `json:"code"`
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// RateProvider fetches the full rate table for all known non-base
// currencies. Any network or parse failure surfaces as
// domain.ErrRateSourceUnavailable and aborts the caller.
type RateProvider interface {
	FetchRates(ctx context.Context) (map[string]RateInfo, error)
}

// RateCache stores a fetched rate table for a bounded time so repeated
// currency operations do not hammer the external feed. A miss returns
// (nil, nil).
type RateCache interface {
	Get(ctx context.Context, key string) (map[string]RateInfo, error)
	Set(ctx context.Context, key string, rates map[string]RateInfo, ttl time.Duration) error
}

// Notifier delivers a confirmation code to a user over an arbitrary channel.
// The core depends only on this contract; delivery transport is external.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}
