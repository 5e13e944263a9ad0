package provider

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"countryfinance/internal/metrics"
)

// FallbackChain calls providers sequentially in priority order and returns
// the first quote that validates. It does not blend results across providers.
type FallbackChain struct {
	providers []RatesProvider
	log       *zap.SugaredLogger
	metrics   *metrics.Metrics
}

// NewFallbackChain creates a new FallbackChain with the given ordered list of providers.
func NewFallbackChain(log *zap.SugaredLogger, m *metrics.Metrics, providers ...RatesProvider) *FallbackChain {
	return &FallbackChain{
		providers: providers,
		log:       log,
		metrics:   m,
	}
}

// FetchRates calls providers sequentially until one succeeds.
func (c *FallbackChain) FetchRates(ctx context.Context, base string) (RateQuote, error) {
	var errs []error
	for _, prov := range c.providers {
		quote, err := prov.FetchRates(ctx, base)
		if err == nil {
			c.observe(prov.Name(), "success")
			return quote, nil
		}
		c.observe(prov.Name(), "failure")
		if c.log != nil {
			c.log.Warnw("Rate provider failed, trying next", "provider", prov.Name(), "base", base, "error", err)
		}
		errs = append(errs, fmt.Errorf("%s: %w", prov.Name(), err))
	}

	return RateQuote{}, fmt.Errorf("all providers failed: %w", errors.Join(errs...))
}

func (c *FallbackChain) observe(providerName, outcome string) {
	if c.metrics != nil {
		c.metrics.RateProviderRequestsTotal.WithLabelValues(providerName, outcome).Inc()
	}
}
