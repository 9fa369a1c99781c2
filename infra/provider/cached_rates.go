package provider

import (
	"context"
	"log/slog"
	"time"

	"github.com/ShantamRU/extraordinary-bank/pkg/provider"
)

const rateTableCacheKey = "rates:daily"

// CachedRateProvider decorates a RateProvider with a snapshot cache so
// repeated currency operations within the TTL reuse one fetch. A cache
// failure falls through to the upstream provider.
type CachedRateProvider struct {
	upstream provider.RateProvider
	cache    provider.RateCache
	ttl      time.Duration
	logger   *slog.Logger
}

func NewCachedRateProvider(
	upstream provider.RateProvider,
	cache provider.RateCache,
	ttl time.Duration,
	logger *slog.Logger,
) *CachedRateProvider {
	return &CachedRateProvider{upstream: upstream, cache: cache, ttl: ttl, logger: logger}
}

func (p *CachedRateProvider) FetchRates(ctx context.Context) (map[string]provider.RateInfo, error) {
	cached, err := p.cache.Get(ctx, rateTableCacheKey)
	if err != nil {
		p.logger.Warn("rate cache get failed", "error", err)
	} else if cached != nil {
		return cached, nil
	}

	rates, err := p.upstream.FetchRates(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.cache.Set(ctx, rateTableCacheKey, rates, p.ttl); err != nil {
		p.logger.Warn("rate cache set failed", "error", err)
	}
	return rates, nil
}

var _ provider.RateProvider = (*CachedRateProvider)(nil)
