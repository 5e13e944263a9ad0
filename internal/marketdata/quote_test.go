package marketdata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"countryfinance/internal/testkit"
)

func TestYahooChartClient_GetIndexValue(t *testing.T) {
	t.Run("known symbol resolves", func(t *testing.T) {
		srv := testkit.NewChartServer(t, map[string]float64{"^N225": 38250.5})
		client := NewYahooChartClient(srv.URL, 5, zap.NewNop().Sugar())

		quote := client.GetIndexValue(context.Background(), "^N225")
		assert.Equal(t, "^N225", quote.Symbol)
		require.NotNil(t, quote.Value)
		assert.InDelta(t, 38250.5, *quote.Value, 0.001)
	})

	t.Run("unknown symbol yields absent value", func(t *testing.T) {
		srv := testkit.NewChartServer(t, map[string]float64{})
		client := NewYahooChartClient(srv.URL, 5, zap.NewNop().Sugar())

		quote := client.GetIndexValue(context.Background(), "^NOPE")
		assert.Equal(t, "^NOPE", quote.Symbol)
		assert.Nil(t, quote.Value)
	})

	t.Run("empty symbol skips the request", func(t *testing.T) {
		client := NewYahooChartClient("http://127.0.0.1:0", 5, zap.NewNop().Sugar())

		quote := client.GetIndexValue(context.Background(), "")
		assert.Empty(t, quote.Symbol)
		assert.Nil(t, quote.Value)
	})

	t.Run("upstream error yields absent value", func(t *testing.T) {
		srv := testkit.NewFailingServer(t, 503)
		client := NewYahooChartClient(srv.URL, 5, zap.NewNop().Sugar())

		quote := client.GetIndexValue(context.Background(), "^GSPC")
		assert.Nil(t, quote.Value)
	})
}

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		name      string
		indexName string
		symbol    string
		want      string
	}{
		{"caret symbol passes through", "Nikkei 225", "^N225", "^N225"},
		{"dotted symbol passes through", "SSE Composite", "000001.SS", "000001.SS"},
		{"name match nifty", "NIFTY 50", "NIFTY", "^NSEI"},
		{"name match sensex", "BSE Sensex", "", "^BSESN"},
		{"name match nikkei", "Nikkei 225", "N225", "^N225"},
		{"name match hang seng", "Hang Seng Index", "HSI", "^HSI"},
		{"symbol fallback match", "Main Index", "SPX", "^GSPC"},
		{"case insensitive", "dax performance index", "", "^GDAXI"},
		{"unknown stays as-is", "Borsa Istanbul 100", "XU100", "XU100"},
		{"both empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSymbol(tt.indexName, tt.symbol))
		})
	}
}
