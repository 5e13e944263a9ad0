package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"countryfinance/internal/config"
)

var _ RatesProvider = (*FrankfurterProvider)(nil)

// FrankfurterProvider fetches rates from the Frankfurter API.
type FrankfurterProvider struct {
	baseURL string
	client  *http.Client
}

// NewFrankfurterProvider creates a new FrankfurterProvider.
func NewFrankfurterProvider(baseURL string, timeoutSec int) *FrankfurterProvider {
	if baseURL == "" {
		baseURL = "https://api.frankfurter.app"
	}
	return &FrankfurterProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

// Name returns the provider identifier used in quotes and config.
func (p *FrankfurterProvider) Name() string {
	return config.ProviderFrankfurter
}

type frankfurterResponse struct {
	Amount float64            `json:"amount"`
	Base   string             `json:"base"`
	Date   string             `json:"date"`
	Rates  map[string]float64 `json:"rates"`
}

// FetchRates retrieves the exchange rates for the given base currency.
// Frankfurter never echoes the self-rate, so for a base that is itself a
// target the symbols list is trimmed and 1.0 is filled in downstream.
func (p *FrankfurterProvider) FetchRates(ctx context.Context, base string) (RateQuote, error) {
	symbols := make([]string, 0, len(TargetCurrencies))
	for _, target := range TargetCurrencies {
		if target != base {
			symbols = append(symbols, target)
		}
	}

	reqURL := fmt.Sprintf("%s/latest?base=%s&symbols=%s", p.baseURL, base, strings.Join(symbols, ","))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return RateQuote{}, fmt.Errorf("frankfurter API request creation failed: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return RateQuote{}, fmt.Errorf("frankfurter API request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return RateQuote{}, fmt.Errorf("frankfurter API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result frankfurterResponse
	if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return RateQuote{}, fmt.Errorf("failed to decode frankfurter API response: %w", err)
	}

	rates, err := pickTargetRates(base, result.Rates)
	if err != nil {
		return RateQuote{}, err
	}

	fetchedAt := time.Now().UTC()
	// Use the quote date from the response when it parses
	if resDate, err := time.Parse("2006-01-02", result.Date); err == nil {
		fetchedAt = resDate.UTC()
	}

	return RateQuote{
		Base:      base,
		Rates:     rates,
		Provider:  p.Name(),
		Success:   true,
		FetchedAt: fetchedAt,
	}, nil
}
