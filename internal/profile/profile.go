// Package profile retrieves structured country finance metadata from a
// generative model and validates it into a typed record.
package profile

import (
	"errors"
	"strings"
)

// ErrUpstreamModel indicates the generative service was unreachable or
// returned output that could not be parsed. Fatal for the current query.
var ErrUpstreamModel = errors.New("upstream model error")

// ErrValidation indicates the parsed reply is missing required fields.
// Fatal for the current query.
var ErrValidation = errors.New("profile validation failed")

// CountryFinanceProfile is the structured finance metadata for one country.
// Immutable after creation. Exchanges may be empty but is never nil.
type CountryFinanceProfile struct {
	CurrencyName string         `json:"currency_name" validate:"required"`
	CurrencyCode string         `json:"currency_code" validate:"required,len=3,alpha"`
	Exchanges    []ExchangeInfo `json:"exchanges" validate:"dive"`
}

// ExchangeInfo describes one stock exchange of a country.
type ExchangeInfo struct {
	Name        string `json:"name" validate:"required"`
	IndexSymbol string `json:"index_symbol"`
	Address     string `json:"address"`
}

// NormalizeCurrencyCode strips non-alphabetic characters, uppercases, and
// truncates to the 3-letter ISO 4217 length. Returns "" for unusable input.
func NormalizeCurrencyCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			b.WriteRune(r)
		}
	}
	normalized := strings.ToUpper(b.String())
	if len(normalized) > 3 {
		normalized = normalized[:3]
	}
	return normalized
}
