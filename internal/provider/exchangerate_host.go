// Package provider implements external rate providers for fetching currency exchange rates.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"countryfinance/internal/config"
)

var _ RatesProvider = (*ExchangeRateHostProvider)(nil)

// ExchangeRateHostProvider fetches rates from the exchangerate.host API.
type ExchangeRateHostProvider struct {
	baseURL string
	client  *http.Client
}

// NewExchangeRateHostProvider creates a new ExchangeRateHostProvider with the given configuration.
func NewExchangeRateHostProvider(baseURL string, timeoutSec int) *ExchangeRateHostProvider {
	if baseURL == "" {
		baseURL = "https://api.exchangerate.host"
	}
	return &ExchangeRateHostProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

// Name returns the provider identifier used in quotes and config.
func (p *ExchangeRateHostProvider) Name() string {
	return config.ProviderExchangeRateHost
}

// exchangerate.host latest API response structure
type erHostResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRates fetches the exchange rates for the given base currency.
func (p *ExchangeRateHostProvider) FetchRates(ctx context.Context, base string) (RateQuote, error) {
	reqURL := fmt.Sprintf("%s/latest?base=%s", p.baseURL, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return RateQuote{}, fmt.Errorf("external API request creation failed: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return RateQuote{}, fmt.Errorf("external API request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return RateQuote{}, fmt.Errorf("external API returned status %d: %s", resp.StatusCode, string(body))
	}
	var result erHostResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return RateQuote{}, fmt.Errorf("failed to decode external API response: %w", err)
	}

	rates, err := pickTargetRates(base, result.Rates)
	if err != nil {
		return RateQuote{}, err
	}

	return RateQuote{
		Base:      base,
		Rates:     rates,
		Provider:  p.Name(),
		Success:   true,
		FetchedAt: time.Now().UTC(),
	}, nil
}
