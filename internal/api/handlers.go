package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"countryfinance/internal/geocoder"
	"countryfinance/internal/profile"
	"countryfinance/internal/service"
)

// countryUnavailableMsg is the user-visible message for fatal profile failures.
const countryUnavailableMsg = "could not retrieve information for this country"

// GeocodeResponse represents the response for an address lookup
type GeocodeResponse struct {
	Found    bool               `json:"found" example:"true"`
	Location *geocoder.GeoPoint `json:"location,omitempty"`
}

// HandleGetCountryFinance godoc
// @Summary Get the full finance report for a country
// @Description Retrieves currency info, FX rates against USD/INR/GBP/EUR, and per-exchange index values and locations for the named country. Rate, index, and geocode failures degrade to "unavailable" fields; only a failed profile lookup fails the request.
// @Tags countries
// @Produce json
// @Param country path string true "Country name" example(Japan)
// @Success 200 {object} service.CountryFinanceReport "Report assembled"
// @Failure 400 {object} ErrorResponse "Missing country name"
// @Failure 502 {object} ErrorResponse "Could not retrieve information for this country"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /api/v1/countries/{country}/finance [get]
func HandleGetCountryFinance(svc service.CountryFinanceServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		country := strings.TrimSpace(chi.URLParam(r, "country"))
		if country == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "country is required"})
			return
		}

		report, err := svc.GetCountryFinance(r.Context(), country)
		if err != nil {
			switch {
			case errors.Is(err, profile.ErrUpstreamModel), errors.Is(err, profile.ErrValidation):
				writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: countryUnavailableMsg})
			default:
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
			}
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}

// HandleGetRates godoc
// @Summary Get FX rates for a currency
// @Description Returns rates for the given base currency against USD, INR, GBP, and EUR from the first rate provider in the fallback chain that answers completely. When every provider fails the body carries success=false with an empty rate map; this endpoint never hard-fails on provider errors.
// @Tags rates
// @Produce json
// @Param code path string true "Base currency code (3 letters)" minlength(3) maxlength(3) example(JPY)
// @Success 200 {object} provider.RateQuote "Quote (success may be false)"
// @Failure 400 {object} ErrorResponse "Invalid currency code format"
// @Router /api/v1/rates/{code} [get]
func HandleGetRates(svc service.CountryFinanceServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		if code == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "code is required"})
			return
		}

		quote, err := svc.GetRates(r.Context(), code)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, quote)
	}
}

// HandleGetIndexValue godoc
// @Summary Get the latest value of a market index
// @Description Returns the latest traded value for the given index symbol. Unknown or malformed symbols yield a quote without a value, not an error.
// @Tags indices
// @Produce json
// @Param symbol path string true "Index ticker symbol" example(^N225)
// @Success 200 {object} marketdata.IndexQuote "Quote (value absent when unresolved)"
// @Failure 400 {object} ErrorResponse "Missing symbol"
// @Router /api/v1/indices/{symbol} [get]
func HandleGetIndexValue(svc service.CountryFinanceServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.TrimSpace(chi.URLParam(r, "symbol"))
		if symbol == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "symbol is required"})
			return
		}

		writeJSON(w, http.StatusOK, svc.GetIndexValue(r.Context(), symbol))
	}
}

// HandleGeocode godoc
// @Summary Geocode a free-text address
// @Description Resolves an address to the first geocoding candidate. Unresolvable addresses yield found=false, not an error.
// @Tags geocode
// @Produce json
// @Param address query string true "Free-text address"
// @Success 200 {object} GeocodeResponse "Lookup result"
// @Failure 400 {object} ErrorResponse "Missing address"
// @Router /api/v1/geocode [get]
func HandleGeocode(svc service.CountryFinanceServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := strings.TrimSpace(r.URL.Query().Get("address"))
		if address == "" {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "address query param is required"})
			return
		}

		point := svc.Geocode(r.Context(), address)
		writeJSON(w, http.StatusOK, GeocodeResponse{
			Found:    point != nil,
			Location: point,
		})
	}
}
