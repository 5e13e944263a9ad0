package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedRatesProviderDecorator wraps a RatesProvider with Redis caching.
// Cached entries hold the full quote, so a cache hit keeps the original
// provider tag.
type CachedRatesProviderDecorator struct {
	provider RatesProvider
	cache    *redis.Client
	ttl      time.Duration
}

// NewCachedRatesProvider creates a new CachedRatesProviderDecorator.
func NewCachedRatesProvider(provider RatesProvider, cache *redis.Client, ttl time.Duration) *CachedRatesProviderDecorator {
	return &CachedRatesProviderDecorator{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
	}
}

// Name returns the underlying provider's identifier.
func (p *CachedRatesProviderDecorator) Name() string {
	return p.provider.Name()
}

func (p *CachedRatesProviderDecorator) cacheKey(base string) string {
	return fmt.Sprintf("provider_cache:%s:{%s}", p.provider.Name(), base)
}

// FetchRates attempts to fetch the quote from cache before calling the underlying provider.
func (p *CachedRatesProviderDecorator) FetchRates(ctx context.Context, base string) (RateQuote, error) {
	if p.cache == nil {
		return p.provider.FetchRates(ctx, base)
	}

	key := p.cacheKey(base)

	// check cache
	if raw, err := p.cache.Get(ctx, key).Result(); err == nil {
		var quote RateQuote
		if err := json.Unmarshal([]byte(raw), &quote); err == nil && quote.Success {
			return quote, nil
		}
	}

	quote, err := p.provider.FetchRates(ctx, base)
	if err != nil {
		return RateQuote{}, err
	}

	if data, err := json.Marshal(quote); err == nil {
		_ = p.cache.Set(ctx, key, data, p.ttl).Err()
	}

	return quote, nil
}

var _ RatesProvider = (*CachedRatesProviderDecorator)(nil)
