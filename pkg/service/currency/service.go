// Package currency implements the currency store: creating currencies from
// the external rate feed and refreshing stored rates.
package currency

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/ShantamRU/extraordinary-bank/pkg/provider"
	"github.com/ShantamRU/extraordinary-bank/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service exposes currency operations backed by the persistent store and the
// external rate provider.
type Service struct {
	uow    repository.UnitOfWork
	rates  provider.RateProvider
	logger *slog.Logger
}

func New(uow repository.UnitOfWork, rates provider.RateProvider, logger *slog.Logger) *Service {
	return &Service{uow: uow, rates: rates, logger: logger}
}

// Create fetches the external rate table and stores the currency when the
// code is present there (or is the base code). Unknown codes fail with
// domain.ErrInvalidCurrency.
func (s *Service) Create(ctx context.Context, code string) (*domain.Currency, error) {
	code = strings.ToUpper(code)
	table, err := s.rates.FetchRates(ctx)
	if err != nil {
		return nil, err
	}

	var cur domain.Currency
	switch info, ok := table[code]; {
	case code == domain.BaseCurrencyCode:
		cur = domain.Currency{Code: code, Name: domain.BaseCurrencyName, Rate: decimal.NewFromInt(1)}
	case ok:
		cur = domain.Currency{Code: code, Name: info.Name, Rate: info.Rate}
	default:
		return nil, domain.ErrInvalidCurrency
	}

	if err := s.uow.Currencies().Create(ctx, &cur); err != nil {
		return nil, err
	}
	s.logger.Info("currency created", "code", cur.Code, "rate", cur.Rate)
	return &cur, nil
}

// Get returns a stored currency or domain.ErrCurrencyNotFound.
func (s *Service) Get(ctx context.Context, code string) (*domain.Currency, error) {
	return s.uow.Currencies().Get(ctx, strings.ToUpper(code))
}

// List returns all stored currencies.
func (s *Service) List(ctx context.Context) ([]domain.Currency, error) {
	return s.uow.Currencies().List(ctx)
}

// Refresh overwrites the rate of every stored currency present in the fresh
// external table. Stored currencies absent from the response are left
// unchanged. All updates commit in one transaction, so a failure leaves no
// partial writes.
func (s *Service) Refresh(ctx context.Context) error {
	table, err := s.rates.FetchRates(ctx)
	if err != nil {
		return err
	}

	var updated int
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		stored, err := uow.Currencies().List(ctx)
		if err != nil {
			return err
		}
		for _, cur := range stored {
			info, ok := table[cur.Code]
			if !ok {
				continue
			}
			if err := uow.Currencies().UpdateRate(ctx, cur.Code, info.Rate); err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("currency rates refreshed", "updated", updated)
	return nil
}
