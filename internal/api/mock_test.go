package api

import (
	"context"

	"countryfinance/internal/geocoder"
	"countryfinance/internal/marketdata"
	"countryfinance/internal/provider"
	"countryfinance/internal/service"
)

// mockFinanceService implements service.CountryFinanceServiceInterface with
// overridable functions.
type mockFinanceService struct {
	getCountryFinanceFunc func(ctx context.Context, country string) (*service.CountryFinanceReport, error)
	getRatesFunc          func(ctx context.Context, code string) (provider.RateQuote, error)
	getIndexValueFunc     func(ctx context.Context, symbol string) marketdata.IndexQuote
	geocodeFunc           func(ctx context.Context, address string) *geocoder.GeoPoint
}

func (m *mockFinanceService) GetCountryFinance(ctx context.Context, country string) (*service.CountryFinanceReport, error) {
	if m.getCountryFinanceFunc != nil {
		return m.getCountryFinanceFunc(ctx, country)
	}
	return &service.CountryFinanceReport{Country: country}, nil
}

func (m *mockFinanceService) GetRates(ctx context.Context, code string) (provider.RateQuote, error) {
	if m.getRatesFunc != nil {
		return m.getRatesFunc(ctx, code)
	}
	return provider.RateQuote{Base: code, Success: true}, nil
}

func (m *mockFinanceService) GetIndexValue(ctx context.Context, symbol string) marketdata.IndexQuote {
	if m.getIndexValueFunc != nil {
		return m.getIndexValueFunc(ctx, symbol)
	}
	return marketdata.IndexQuote{Symbol: symbol}
}

func (m *mockFinanceService) Geocode(ctx context.Context, address string) *geocoder.GeoPoint {
	if m.geocodeFunc != nil {
		return m.geocodeFunc(ctx, address)
	}
	return nil
}

var _ service.CountryFinanceServiceInterface = (*mockFinanceService)(nil)
