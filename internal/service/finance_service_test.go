package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"countryfinance/internal/geocoder"
	"countryfinance/internal/marketdata"
	"countryfinance/internal/profile"
	"countryfinance/internal/provider"
)

type fakeProfiles struct {
	profile *profile.CountryFinanceProfile
	err     error
	calls   int
}

func (f *fakeProfiles) RequestProfile(_ context.Context, _ string) (*profile.CountryFinanceProfile, error) {
	f.calls++
	return f.profile, f.err
}

type fakeRates struct {
	// quotes maps base currency to the quote to return; bases absent from
	// the map fail.
	quotes map[string]provider.RateQuote
	calls  []string
}

func (f *fakeRates) FetchRates(_ context.Context, base string) (provider.RateQuote, error) {
	f.calls = append(f.calls, base)
	quote, ok := f.quotes[base]
	if !ok {
		return provider.RateQuote{}, errors.New("all providers failed")
	}
	return quote, nil
}

type fakeIndices struct {
	values map[string]float64
	calls  []string
}

func (f *fakeIndices) GetIndexValue(_ context.Context, symbol string) marketdata.IndexQuote {
	f.calls = append(f.calls, symbol)
	quote := marketdata.IndexQuote{Symbol: symbol}
	if v, ok := f.values[symbol]; ok {
		value := v
		quote.Value = &value
	}
	return quote
}

type fakeGeo struct {
	points map[string]*geocoder.GeoPoint
	err    error
	calls  []string
}

func (f *fakeGeo) Geocode(_ context.Context, address string) (*geocoder.GeoPoint, error) {
	f.calls = append(f.calls, address)
	if f.err != nil {
		return nil, f.err
	}
	return f.points[address], nil
}

func usdQuote() provider.RateQuote {
	return provider.RateQuote{
		Base:      "USD",
		Rates:     map[string]float64{"USD": 1.0, "INR": 83.2, "GBP": 0.79, "EUR": 0.92},
		Provider:  "exchangerate_host",
		Success:   true,
		FetchedAt: time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}
}

func newTestService(p ProfileRequester, r RatesFetcher, i marketdata.IndexFetcher, g geocoder.Geocoder) *CountryFinanceService {
	return NewCountryFinanceService(p, r, i, g, zap.NewNop().Sugar(), nil)
}

func TestCountryFinanceService_GetRates(t *testing.T) {
	t.Run("provider rates pass through untouched", func(t *testing.T) {
		rates := &fakeRates{quotes: map[string]provider.RateQuote{"USD": usdQuote()}}
		svc := newTestService(&fakeProfiles{}, rates, &fakeIndices{}, &fakeGeo{})

		quote, err := svc.GetRates(context.Background(), "USD")
		require.NoError(t, err)
		assert.True(t, quote.Success)
		assert.Equal(t, "exchangerate_host", quote.Provider)
		assert.Equal(t, usdQuote().Rates, quote.Rates)
		assert.Equal(t, []string{"USD"}, rates.calls)
	})

	t.Run("code is normalized before fetching", func(t *testing.T) {
		rates := &fakeRates{quotes: map[string]provider.RateQuote{"USD": usdQuote()}}
		svc := newTestService(&fakeProfiles{}, rates, &fakeIndices{}, &fakeGeo{})

		quote, err := svc.GetRates(context.Background(), " usd ")
		require.NoError(t, err)
		assert.Equal(t, "USD", quote.Base)
	})

	t.Run("invalid code", func(t *testing.T) {
		rates := &fakeRates{}
		svc := newTestService(&fakeProfiles{}, rates, &fakeIndices{}, &fakeGeo{})

		_, err := svc.GetRates(context.Background(), "12")
		assert.ErrorIs(t, err, ErrInvalidCurrencyCode)
		assert.Empty(t, rates.calls)
	})

	t.Run("chain failure derives from USD quote", func(t *testing.T) {
		rates := &fakeRates{quotes: map[string]provider.RateQuote{"USD": usdQuote()}}
		svc := newTestService(&fakeProfiles{}, rates, &fakeIndices{}, &fakeGeo{})

		quote, err := svc.GetRates(context.Background(), "EUR")
		require.NoError(t, err)
		assert.True(t, quote.Success)
		assert.Equal(t, DerivedProviderUSDInverse, quote.Provider)
		assert.Equal(t, "EUR", quote.Base)
		assert.InDelta(t, 1.0/0.92, quote.Rates["USD"], 0.0001)
		assert.InDelta(t, 83.2/0.92, quote.Rates["INR"], 0.0001)
		assert.InDelta(t, 1.0, quote.Rates["EUR"], 0.0001)
		assert.Equal(t, []string{"EUR", "USD"}, rates.calls)
	})

	t.Run("total failure yields sentinel, never an error", func(t *testing.T) {
		rates := &fakeRates{}
		svc := newTestService(&fakeProfiles{}, rates, &fakeIndices{}, &fakeGeo{})

		quote, err := svc.GetRates(context.Background(), "EUR")
		require.NoError(t, err)
		assert.False(t, quote.Success)
		assert.Equal(t, "EUR", quote.Base)
		assert.Empty(t, quote.Rates)
	})

	t.Run("USD failure does not recurse", func(t *testing.T) {
		rates := &fakeRates{}
		svc := newTestService(&fakeProfiles{}, rates, &fakeIndices{}, &fakeGeo{})

		quote, err := svc.GetRates(context.Background(), "USD")
		require.NoError(t, err)
		assert.False(t, quote.Success)
		assert.Equal(t, []string{"USD"}, rates.calls)
	})

	t.Run("USD quote without base rate cannot derive", func(t *testing.T) {
		usd := usdQuote()
		delete(usd.Rates, "GBP")
		rates := &fakeRates{quotes: map[string]provider.RateQuote{"USD": usd}}
		svc := newTestService(&fakeProfiles{}, rates, &fakeIndices{}, &fakeGeo{})

		quote, err := svc.GetRates(context.Background(), "GBP")
		require.NoError(t, err)
		assert.False(t, quote.Success)
	})
}

func TestCountryFinanceService_GetCountryFinance(t *testing.T) {
	usaProfile := &profile.CountryFinanceProfile{
		CurrencyName: "United States Dollar",
		CurrencyCode: "USD",
		Exchanges: []profile.ExchangeInfo{
			{Name: "New York Stock Exchange", IndexSymbol: "DOW", Address: "11 Wall Street, New York, NY"},
			{Name: "NASDAQ", IndexSymbol: "NASDAQ", Address: "151 W 42nd St, New York, NY"},
		},
	}

	t.Run("full report", func(t *testing.T) {
		rates := &fakeRates{quotes: map[string]provider.RateQuote{"USD": usdQuote()}}
		indices := &fakeIndices{values: map[string]float64{"^DJI": 39100.25, "^IXIC": 16400.5}}
		geo := &fakeGeo{points: map[string]*geocoder.GeoPoint{
			"11 Wall Street, New York, NY": {Latitude: 40.7069, Longitude: -74.0113},
		}}
		svc := newTestService(&fakeProfiles{profile: usaProfile}, rates, indices, geo)

		report, err := svc.GetCountryFinance(context.Background(), "USA")
		require.NoError(t, err)

		assert.Equal(t, "USA", report.Country)
		assert.Equal(t, "United States Dollar", report.CurrencyName)
		assert.Equal(t, "USD", report.CurrencyCode)
		assert.True(t, report.Rates.Success)
		assert.Equal(t, usdQuote().Rates, report.Rates.Rates)

		require.Len(t, report.Exchanges, 2)

		nyse := report.Exchanges[0]
		assert.Equal(t, "New York Stock Exchange", nyse.Name)
		assert.Equal(t, "^DJI", nyse.IndexQuote.Symbol)
		require.NotNil(t, nyse.IndexQuote.Value)
		assert.InDelta(t, 39100.25, *nyse.IndexQuote.Value, 0.001)
		require.NotNil(t, nyse.Location)
		assert.InDelta(t, 40.7069, nyse.Location.Latitude, 0.0001)

		nasdaq := report.Exchanges[1]
		assert.Equal(t, "^IXIC", nasdaq.IndexQuote.Symbol)
		assert.Nil(t, nasdaq.Location)

		assert.Equal(t, []string{"^DJI", "^IXIC"}, indices.calls)
	})

	t.Run("profile failure is fatal", func(t *testing.T) {
		profiles := &fakeProfiles{err: profile.ErrUpstreamModel}
		rates := &fakeRates{}
		svc := newTestService(profiles, rates, &fakeIndices{}, &fakeGeo{})

		_, err := svc.GetCountryFinance(context.Background(), "USA")
		assert.ErrorIs(t, err, profile.ErrUpstreamModel)
		assert.Empty(t, rates.calls)
	})

	t.Run("rate failure degrades, report still builds", func(t *testing.T) {
		rates := &fakeRates{}
		indices := &fakeIndices{values: map[string]float64{"^DJI": 39100.25}}
		svc := newTestService(&fakeProfiles{profile: usaProfile}, rates, indices, &fakeGeo{})

		report, err := svc.GetCountryFinance(context.Background(), "USA")
		require.NoError(t, err)
		assert.False(t, report.Rates.Success)
		assert.Len(t, report.Exchanges, 2)
	})

	t.Run("no exchanges means no downstream fetches", func(t *testing.T) {
		prof := &profile.CountryFinanceProfile{
			CurrencyName: "CFA Franc",
			CurrencyCode: "XOF",
			Exchanges:    []profile.ExchangeInfo{},
		}
		rates := &fakeRates{}
		indices := &fakeIndices{}
		geo := &fakeGeo{}
		svc := newTestService(&fakeProfiles{profile: prof}, rates, indices, geo)

		report, err := svc.GetCountryFinance(context.Background(), "Benin")
		require.NoError(t, err)
		assert.NotNil(t, report.Exchanges)
		assert.Empty(t, report.Exchanges)
		assert.Empty(t, indices.calls)
		assert.Empty(t, geo.calls)
	})

	t.Run("geocoding failure degrades to not found", func(t *testing.T) {
		rates := &fakeRates{quotes: map[string]provider.RateQuote{"USD": usdQuote()}}
		geo := &fakeGeo{err: errors.New("quota exceeded")}
		svc := newTestService(&fakeProfiles{profile: usaProfile}, rates, &fakeIndices{}, geo)

		report, err := svc.GetCountryFinance(context.Background(), "USA")
		require.NoError(t, err)
		for _, ex := range report.Exchanges {
			assert.Nil(t, ex.Location)
		}
	})
}

func TestIsValidCurrencyCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"USD", true},
		{"JPY", true},
		{"usd", false},
		{"US", false},
		{"USDX", false},
		{"U1D", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidCurrencyCode(tt.code))
		})
	}
}
