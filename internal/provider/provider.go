package provider

import (
	"context"
	"fmt"
	"time"
)

// TargetCurrencies are the quote currencies every rate lookup must resolve.
var TargetCurrencies = []string{"USD", "INR", "GBP", "EUR"}

// RateQuote is the result of a single rate lookup. Rates maps each target
// currency code to the amount one unit of Base buys.
type RateQuote struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	Provider  string             `json:"provider"`
	Success   bool               `json:"success"`
	FetchedAt time.Time          `json:"fetched_at"`
}

// FailedQuote returns the sentinel quote for a base currency whose rates
// could not be fetched from any provider.
func FailedQuote(base string) RateQuote {
	return RateQuote{Base: base, Rates: map[string]float64{}}
}

// RatesProvider defines an interface for fetching exchange rates from external sources.
type RatesProvider interface {
	Name() string
	FetchRates(ctx context.Context, base string) (RateQuote, error)
}

// pickTargetRates validates that raw carries a numeric rate for every target
// currency and returns only those. A provider that omits the self-rate when
// base is itself a target gets 1.0 passed through.
func pickTargetRates(base string, raw map[string]float64) (map[string]float64, error) {
	rates := make(map[string]float64, len(TargetCurrencies))
	for _, target := range TargetCurrencies {
		val, ok := raw[target]
		if !ok {
			if target == base {
				rates[target] = 1.0
				continue
			}
			return nil, fmt.Errorf("no rate for %s/%s in response", base, target)
		}
		rates[target] = val
	}
	return rates, nil
}
