package provider_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	infraprovider "github.com/ShantamRU/extraordinary-bank/infra/provider"
	"github.com/ShantamRU/extraordinary-bank/pkg/config"
	"github.com/ShantamRU/extraordinary-bank/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCBRProvider(url string) *infraprovider.CBRProvider {
	return infraprovider.NewCBRProvider(config.RatesConfig{
		Url:         url,
		HTTPTimeout: 5 * time.Second,
	}, slog.New(slog.DiscardHandler))
}

func TestFetchRatesDecodesDailyFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"Valute": {
				"USD": {"Name": "Доллар США", "Value": 74.57},
				"EUR": {"Name": "Евро", "Value": 90.79}
			}
		}`))
	}))
	defer srv.Close()

	rates, err := newCBRProvider(srv.URL).FetchRates(context.Background())
	require.NoError(t, err)
	require.Len(t, rates, 2)

	usd := rates["USD"]
	assert.Equal(t, "USD", usd.Code)
	assert.Equal(t, "Доллар США", usd.Name)
	assert.True(t, usd.Rate.Equal(decimal.RequireFromString("74.57")))
}

func TestFetchRatesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newCBRProvider(srv.URL).FetchRates(context.Background())
	assert.ErrorIs(t, err, domain.ErrRateSourceUnavailable)
}

func TestFetchRatesOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newCBRProvider(srv.URL).FetchRates(context.Background())
	assert.ErrorIs(t, err, domain.ErrRateSourceUnavailable)
}

func TestFetchRatesOnUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from now on

	_, err := newCBRProvider(srv.URL).FetchRates(context.Background())
	assert.ErrorIs(t, err, domain.ErrRateSourceUnavailable)
}
