// Package testkit provides fake upstream servers for exercising the external
// fetch paths in tests.
package testkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// NewExchangeRateHostServer serves the exchangerate.host latest endpoint with
// the given rate map for any base.
func NewExchangeRateHostServer(t *testing.T, rates map[string]float64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"base":  r.URL.Query().Get("base"),
			"rates": rates,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// NewOpenERAPIServer serves the open.er-api.com v6 latest endpoint with the
// given rate map for any base.
func NewOpenERAPIServer(t *testing.T, rates map[string]float64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"result": "success",
			"rates":  rates,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// NewFrankfurterServer serves the frankfurter latest endpoint with the given
// rate map for any base.
func NewFrankfurterServer(t *testing.T, rates map[string]float64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"amount": 1.0,
			"base":   r.URL.Query().Get("base"),
			"date":   "2026-03-02",
			"rates":  rates,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// NewFailingServer answers every request with the given HTTP status.
func NewFailingServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// NewChartServer serves the Yahoo chart endpoint. Symbols present in prices
// resolve to their value; anything else yields a chart error payload.
func NewChartServer(t *testing.T, prices map[string]float64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.TrimPrefix(r.URL.Path, "/v8/finance/chart/")

		price, ok := prices[symbol]
		if !ok {
			writeJSON(t, w, map[string]any{
				"chart": map[string]any{
					"result": nil,
					"error":  map[string]any{"code": "Not Found", "description": "No data found"},
				},
			})
			return
		}
		writeJSON(t, w, map[string]any{
			"chart": map[string]any{
				"result": []map[string]any{
					{"meta": map[string]any{"regularMarketPrice": price}},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// NewGeocodeServer serves the Google geocoding endpoint. Addresses present in
// known resolve to their [lat, lng]; anything else yields ZERO_RESULTS.
func NewGeocodeServer(t *testing.T, known map[string][2]float64) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		address := r.URL.Query().Get("address")
		coords, ok := known[address]
		if !ok {
			writeJSON(t, w, map[string]any{"status": "ZERO_RESULTS", "results": []any{}})
			return
		}
		writeJSON(t, w, map[string]any{
			"status": "OK",
			"results": []map[string]any{
				{
					"formatted_address": address,
					"geometry": map[string]any{
						"location": map[string]any{"lat": coords[0], "lng": coords[1]},
					},
				},
			},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(t *testing.T, w http.ResponseWriter, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		t.Errorf("testkit: encode fake response: %v", err)
	}
}
