package provider

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"countryfinance/internal/testkit"
)

func TestExchangeRateHostProvider_FetchRates(t *testing.T) {
	t.Run("complete response", func(t *testing.T) {
		srv := testkit.NewExchangeRateHostServer(t, map[string]float64{
			"USD": 0.0067, "INR": 0.56, "GBP": 0.0052, "EUR": 0.0061, "CHF": 0.0059,
		})

		p := NewExchangeRateHostProvider(srv.URL, 5)
		quote, err := p.FetchRates(context.Background(), "JPY")

		require.NoError(t, err)
		assert.True(t, quote.Success)
		assert.Equal(t, "exchangerate_host", quote.Provider)
		assert.Equal(t, "JPY", quote.Base)
		// only the four targets survive
		assert.Equal(t, map[string]float64{"USD": 0.0067, "INR": 0.56, "GBP": 0.0052, "EUR": 0.0061}, quote.Rates)
	})

	t.Run("incomplete response fails", func(t *testing.T) {
		srv := testkit.NewExchangeRateHostServer(t, map[string]float64{
			"USD": 0.0067, "GBP": 0.0052,
		})

		p := NewExchangeRateHostProvider(srv.URL, 5)
		_, err := p.FetchRates(context.Background(), "JPY")

		assert.Error(t, err)
	})

	t.Run("http error fails", func(t *testing.T) {
		srv := testkit.NewFailingServer(t, http.StatusServiceUnavailable)

		p := NewExchangeRateHostProvider(srv.URL, 5)
		_, err := p.FetchRates(context.Background(), "JPY")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "503")
	})
}

func TestOpenERAPIProvider_FetchRates(t *testing.T) {
	t.Run("complete response", func(t *testing.T) {
		srv := testkit.NewOpenERAPIServer(t, map[string]float64{
			"USD": 1, "INR": 83, "GBP": 0.78, "EUR": 0.92,
		})

		p := NewOpenERAPIProvider(srv.URL, 5)
		quote, err := p.FetchRates(context.Background(), "USD")

		require.NoError(t, err)
		assert.True(t, quote.Success)
		assert.Equal(t, "open_er_api", quote.Provider)
		assert.Equal(t, 83.0, quote.Rates["INR"])
	})

	t.Run("http error fails", func(t *testing.T) {
		srv := testkit.NewFailingServer(t, http.StatusTooManyRequests)

		p := NewOpenERAPIProvider(srv.URL, 5)
		_, err := p.FetchRates(context.Background(), "USD")

		assert.Error(t, err)
	})
}

func TestFrankfurterProvider_FetchRates(t *testing.T) {
	t.Run("self rate filled in for USD base", func(t *testing.T) {
		// frankfurter never echoes the base currency
		srv := testkit.NewFrankfurterServer(t, map[string]float64{
			"INR": 83, "GBP": 0.78, "EUR": 0.92,
		})

		p := NewFrankfurterProvider(srv.URL, 5)
		quote, err := p.FetchRates(context.Background(), "USD")

		require.NoError(t, err)
		assert.True(t, quote.Success)
		assert.Equal(t, "frankfurter", quote.Provider)
		assert.Equal(t, 1.0, quote.Rates["USD"])
		assert.Equal(t, 83.0, quote.Rates["INR"])
	})

	t.Run("quote date used as fetch timestamp", func(t *testing.T) {
		srv := testkit.NewFrankfurterServer(t, map[string]float64{
			"USD": 1.08, "INR": 90, "GBP": 0.85,
		})

		p := NewFrankfurterProvider(srv.URL, 5)
		quote, err := p.FetchRates(context.Background(), "EUR")

		require.NoError(t, err)
		assert.Equal(t, "2026-03-02", quote.FetchedAt.Format("2006-01-02"))
	})

	t.Run("missing target fails", func(t *testing.T) {
		srv := testkit.NewFrankfurterServer(t, map[string]float64{
			"USD": 0.0067,
		})

		p := NewFrankfurterProvider(srv.URL, 5)
		_, err := p.FetchRates(context.Background(), "JPY")

		assert.Error(t, err)
	})
}
