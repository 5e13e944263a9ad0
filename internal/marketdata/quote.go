// Package marketdata fetches latest market index values.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// IndexQuote is the latest value of one market index. Value is nil when the
// symbol could not be resolved.
type IndexQuote struct {
	Symbol string   `json:"symbol"`
	Value  *float64 `json:"value,omitempty"`
}

// IndexFetcher resolves a market index symbol to its latest traded value.
type IndexFetcher interface {
	// GetIndexValue never fails: unresolvable or invalid symbols yield a
	// quote with a nil Value.
	GetIndexValue(ctx context.Context, symbol string) IndexQuote
}

var _ IndexFetcher = (*YahooChartClient)(nil)

// YahooChartClient fetches index values from the Yahoo Finance chart API.
type YahooChartClient struct {
	baseURL string
	client  *http.Client
	log     *zap.SugaredLogger
}

// NewYahooChartClient creates a new YahooChartClient.
func NewYahooChartClient(baseURL string, timeoutSec int, log *zap.SugaredLogger) *YahooChartClient {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &YahooChartClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		log:     log,
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				RegularMarketPrice *float64 `json:"regularMarketPrice"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetIndexValue fetches the latest value for the given symbol. One request
// per symbol, no batching, no caching across symbols.
func (c *YahooChartClient) GetIndexValue(ctx context.Context, symbol string) IndexQuote {
	quote := IndexQuote{Symbol: symbol}
	if symbol == "" {
		return quote
	}

	value, err := c.fetchPrice(ctx, symbol)
	if err != nil {
		c.log.Warnw("Index value unavailable", "symbol", symbol, "error", err)
		return quote
	}

	quote.Value = value
	return quote
}

func (c *YahooChartClient) fetchPrice(ctx context.Context, symbol string) (*float64, error) {
	reqURL := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=1d", c.baseURL, url.PathEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("chart API request creation failed: %w", err)
	}
	// Yahoo rejects requests without a browser-like agent
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chart API request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("chart API returned status %d: %s", resp.StatusCode, string(body))
	}

	var result chartResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode chart API response: %w", err)
	}
	if result.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error %s: %s", result.Chart.Error.Code, result.Chart.Error.Description)
	}
	if len(result.Chart.Result) == 0 || result.Chart.Result[0].Meta.RegularMarketPrice == nil {
		return nil, fmt.Errorf("no market price for %s in response", symbol)
	}

	return result.Chart.Result[0].Meta.RegularMarketPrice, nil
}
