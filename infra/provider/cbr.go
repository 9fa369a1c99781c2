// Package provider implements the external collaborators: the CBR daily
// rate feed and the caching decorator around it.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ShantamRU/extraordinary-bank/pkg/config"
	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/ShantamRU/extraordinary-bank/pkg/provider"
	"github.com/shopspring/decimal"
)

// CBRProvider fetches the Central Bank of Russia daily feed. The feed maps
// char codes to names and RUB-relative values for every known non-base
// currency.
type CBRProvider struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// cbrResponse is the shape of https://www.cbr-xml-daily.ru/daily_json.js.
type cbrResponse struct {
	Valute map[string]struct {
		Name  string          `json:"Name"`
		Value decimal.Decimal `json:"Value"`
	} `json:"Valute"`
}

func NewCBRProvider(cfg config.RatesConfig, logger *slog.Logger) *CBRProvider {
	return &CBRProvider{
		url:        cfg.Url,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		logger:     logger,
	}
}

// FetchRates downloads and decodes the full rate table. Any network or parse
// failure surfaces as domain.ErrRateSourceUnavailable.
func (p *CBRProvider) FetchRates(ctx context.Context) (map[string]provider.RateInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRateSourceUnavailable, err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRateSourceUnavailable, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: rate source returned status %d",
			domain.ErrRateSourceUnavailable, resp.StatusCode)
	}

	var body cbrResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRateSourceUnavailable, err)
	}

	rates := make(map[string]provider.RateInfo, len(body.Valute))
	for code, v := range body.Valute {
		rates[code] = provider.RateInfo{Code: code, Name: v.Name, Rate: v.Value}
	}
	p.logger.Info("fetched exchange rates", "source", p.url, "count", len(rates))
	return rates, nil
}

var _ provider.RateProvider = (*CBRProvider)(nil)
