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

var _ RatesProvider = (*OpenERAPIProvider)(nil)

// OpenERAPIProvider fetches rates from the open.er-api.com API.
type OpenERAPIProvider struct {
	baseURL string
	client  *http.Client
}

// NewOpenERAPIProvider creates a new OpenERAPIProvider.
func NewOpenERAPIProvider(baseURL string, timeoutSec int) *OpenERAPIProvider {
	if baseURL == "" {
		baseURL = "https://open.er-api.com"
	}
	return &OpenERAPIProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

// Name returns the provider identifier used in quotes and config.
func (p *OpenERAPIProvider) Name() string {
	return config.ProviderOpenERAPI
}

type openERAPIResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// FetchRates retrieves the exchange rates for the given base currency.
func (p *OpenERAPIProvider) FetchRates(ctx context.Context, base string) (RateQuote, error) {
	reqURL := fmt.Sprintf("%s/v6/latest/%s", p.baseURL, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return RateQuote{}, fmt.Errorf("open.er-api request creation failed: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return RateQuote{}, fmt.Errorf("open.er-api request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return RateQuote{}, fmt.Errorf("open.er-api returned status %d: %s", resp.StatusCode, string(body))
	}

	var result openERAPIResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return RateQuote{}, fmt.Errorf("failed to decode open.er-api response: %w", err)
	}
	if result.Result != "success" {
		return RateQuote{}, fmt.Errorf("open.er-api returned result=%q for %s", result.Result, base)
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
