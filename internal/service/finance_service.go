// Package service implements the core orchestration logic for country
// finance reports.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"countryfinance/internal/geocoder"
	"countryfinance/internal/marketdata"
	"countryfinance/internal/metrics"
	"countryfinance/internal/profile"
	"countryfinance/internal/provider"
)

// DerivedProviderUSDInverse tags quotes computed by inverting a USD-based
// quote rather than fetched directly from a provider.
const DerivedProviderUSDInverse = "usd_inverse"

// ErrInvalidCurrencyCode indicates the currency code format is invalid.
var ErrInvalidCurrencyCode = errors.New("invalid currency code format")

// CountryFinanceServiceInterface defines the operations exposed to the API layer.
type CountryFinanceServiceInterface interface {
	GetCountryFinance(ctx context.Context, country string) (*CountryFinanceReport, error)
	GetRates(ctx context.Context, code string) (provider.RateQuote, error)
	GetIndexValue(ctx context.Context, symbol string) marketdata.IndexQuote
	Geocode(ctx context.Context, address string) *geocoder.GeoPoint
}

// ProfileRequester retrieves structured country finance metadata.
type ProfileRequester interface {
	RequestProfile(ctx context.Context, countryName string) (*profile.CountryFinanceProfile, error)
}

// RatesFetcher fetches a validated rate quote, failing when no source can
// serve one. The fallback chain satisfies this.
type RatesFetcher interface {
	FetchRates(ctx context.Context, base string) (provider.RateQuote, error)
}

// ExchangeReport is one exchange of the report with its fetched index value
// and resolved location.
type ExchangeReport struct {
	Name       string                `json:"name"`
	Address    string                `json:"address,omitempty"`
	IndexQuote marketdata.IndexQuote `json:"index_quote"`
	Location   *geocoder.GeoPoint    `json:"location,omitempty"`
}

// CountryFinanceReport aggregates everything fetched for one country query.
type CountryFinanceReport struct {
	Country      string             `json:"country"`
	CurrencyName string             `json:"currency_name"`
	CurrencyCode string             `json:"currency_code"`
	Rates        provider.RateQuote `json:"rates"`
	Exchanges    []ExchangeReport   `json:"exchanges"`
}

// CountryFinanceService orchestrates the profile, rate, index, and geocode
// fetches for a country query. All external calls are sequential; the service
// holds no state between queries.
type CountryFinanceService struct {
	profiles ProfileRequester
	rates    RatesFetcher
	indices  marketdata.IndexFetcher
	geo      geocoder.Geocoder
	log      *zap.SugaredLogger
	metrics  *metrics.Metrics
}

// NewCountryFinanceService creates a new CountryFinanceService.
func NewCountryFinanceService(
	profiles ProfileRequester,
	rates RatesFetcher,
	indices marketdata.IndexFetcher,
	geo geocoder.Geocoder,
	log *zap.SugaredLogger,
	m *metrics.Metrics,
) *CountryFinanceService {
	return &CountryFinanceService{
		profiles: profiles,
		rates:    rates,
		indices:  indices,
		geo:      geo,
		log:      log,
		metrics:  m,
	}
}

// GetCountryFinance builds the full report for a country: profile, then
// rates, then per-exchange index value and location. Profile failures are
// fatal for the query; everything downstream degrades to "unavailable".
func (s *CountryFinanceService) GetCountryFinance(ctx context.Context, country string) (*CountryFinanceReport, error) {
	start := time.Now()
	prof, err := s.profiles.RequestProfile(ctx, country)
	s.observeStage("profile", start)
	if err != nil {
		s.countProfile(profileOutcome(err))
		s.log.Errorw("Profile request failed", "country", country, "error", err)
		return nil, err
	}
	s.countProfile("success")

	report := &CountryFinanceReport{
		Country:      country,
		CurrencyName: prof.CurrencyName,
		CurrencyCode: prof.CurrencyCode,
		Exchanges:    make([]ExchangeReport, 0, len(prof.Exchanges)),
	}

	quote, err := s.GetRates(ctx, prof.CurrencyCode)
	if err != nil {
		// Validated profiles carry well-formed codes; treat a reject as total failure.
		quote = provider.FailedQuote(prof.CurrencyCode)
	}
	report.Rates = quote

	// An empty exchange list means nothing to fetch, not an error.
	for _, ex := range prof.Exchanges {
		entry := ExchangeReport{
			Name:    ex.Name,
			Address: ex.Address,
		}

		symbol := marketdata.NormalizeSymbol(ex.Name, ex.IndexSymbol)
		entry.IndexQuote = s.GetIndexValue(ctx, symbol)
		entry.Location = s.Geocode(ctx, ex.Address)

		report.Exchanges = append(report.Exchanges, entry)
	}

	return report, nil
}

// GetRates resolves FX rates for the given currency code against the target
// set. It never propagates provider failures: when the whole chain fails it
// falls back to deriving the quote from a USD-based one, and failing that
// returns the failure sentinel. The only possible error is a malformed code.
func (s *CountryFinanceService) GetRates(ctx context.Context, code string) (provider.RateQuote, error) {
	code = profile.NormalizeCurrencyCode(code)
	if !IsValidCurrencyCode(code) {
		return provider.RateQuote{}, ErrInvalidCurrencyCode
	}

	start := time.Now()
	defer s.observeStage("rates", start)

	quote, err := s.rates.FetchRates(ctx, code)
	if err == nil {
		return quote, nil
	}
	s.log.Warnw("All rate providers failed", "base", code, "error", err)

	if code != "USD" {
		if derived, ok := s.deriveFromUSD(ctx, code); ok {
			return derived, nil
		}
	}

	return provider.FailedQuote(code), nil
}

// deriveFromUSD computes rates for base from a USD quote that carries a
// USD/base rate: rate[T] = usd.Rates[T] / usd.Rates[base].
func (s *CountryFinanceService) deriveFromUSD(ctx context.Context, base string) (provider.RateQuote, bool) {
	usd, err := s.rates.FetchRates(ctx, "USD")
	if err != nil {
		return provider.RateQuote{}, false
	}

	usdToBase, ok := usd.Rates[base]
	if !ok || usdToBase <= 0 {
		return provider.RateQuote{}, false
	}

	rates := make(map[string]float64, len(usd.Rates))
	for target, usdToTarget := range usd.Rates {
		rates[target] = usdToTarget / usdToBase
	}

	s.log.Infow("Derived rates from USD quote", "base", base, "via", usd.Provider)
	return provider.RateQuote{
		Base:      base,
		Rates:     rates,
		Provider:  DerivedProviderUSDInverse,
		Success:   true,
		FetchedAt: usd.FetchedAt,
	}, true
}

// GetIndexValue fetches the latest value for a market index symbol.
// Unresolvable symbols yield a quote with no value, never an error.
func (s *CountryFinanceService) GetIndexValue(ctx context.Context, symbol string) marketdata.IndexQuote {
	start := time.Now()
	defer s.observeStage("index", start)
	return s.indices.GetIndexValue(ctx, symbol)
}

// Geocode resolves an address to its first geocoding candidate, or nil when
// nothing resolves. Provider failures degrade to "not found".
func (s *CountryFinanceService) Geocode(ctx context.Context, address string) *geocoder.GeoPoint {
	if address == "" {
		return nil
	}

	start := time.Now()
	defer s.observeStage("geocode", start)

	point, err := s.geo.Geocode(ctx, address)
	if err != nil {
		s.log.Warnw("Geocoding failed", "address", address, "error", err)
		return nil
	}
	return point
}

func (s *CountryFinanceService) observeStage(stage string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ExternalFetchDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}

func (s *CountryFinanceService) countProfile(outcome string) {
	if s.metrics != nil {
		s.metrics.ProfileRequestsTotal.WithLabelValues(outcome).Inc()
	}
}

func profileOutcome(err error) string {
	switch {
	case errors.Is(err, profile.ErrValidation):
		return "validation_error"
	case errors.Is(err, profile.ErrUpstreamModel):
		return "upstream_error"
	default:
		return "error"
	}
}

// IsValidCurrencyCode checks whether a string is a valid 3-letter currency code.
func IsValidCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}
