// Package geocoder resolves free-text addresses to coordinates.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// GeoPoint is one resolved location.
type GeoPoint struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address"`
	MapsLink         string  `json:"maps_link"`
}

// Geocoder resolves a free-text address to a location.
type Geocoder interface {
	// Geocode returns the first candidate for the address, or nil when the
	// provider returned zero candidates. Transport and provider failures are
	// returned as errors; callers substitute "not found" for those.
	Geocode(ctx context.Context, address string) (*GeoPoint, error)
}

var _ Geocoder = (*GoogleGeocoder)(nil)

// GoogleGeocoder resolves addresses through the Google Maps Geocoding API.
type GoogleGeocoder struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewGoogleGeocoder creates a new GoogleGeocoder.
func NewGoogleGeocoder(baseURL, apiKey string, timeoutSec int) *GoogleGeocoder {
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com/maps/api/geocode"
	}
	return &GoogleGeocoder{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode resolves the address, using the first candidate when the provider
// returns several. No disambiguation heuristic is applied.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*GeoPoint, error) {
	if address == "" {
		return nil, nil
	}

	reqURL := fmt.Sprintf("%s/json?address=%s&key=%s", g.baseURL, url.QueryEscape(address), url.QueryEscape(g.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("geocoding API request creation failed: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoding API request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocoding API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode geocoding API response: %w", err)
	}

	switch result.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		return nil, fmt.Errorf("geocoding API returned status %q", result.Status)
	}
	if len(result.Results) == 0 {
		return nil, nil
	}

	loc := result.Results[0]
	return &GeoPoint{
		Latitude:         loc.Geometry.Location.Lat,
		Longitude:        loc.Geometry.Location.Lng,
		FormattedAddress: loc.FormattedAddress,
		MapsLink:         fmt.Sprintf("https://www.google.com/maps?q=%v,%v", loc.Geometry.Location.Lat, loc.Geometry.Location.Lng),
	}, nil
}

// Disabled is a Geocoder used when no API key is configured. Every lookup
// resolves to "not found".
type Disabled struct{}

// Geocode always reports no candidates.
func (Disabled) Geocode(context.Context, string) (*GeoPoint, error) {
	return nil, nil
}
