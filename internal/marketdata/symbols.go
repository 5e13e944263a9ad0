package marketdata

import "strings"

// wellKnownIndices maps fragments of well-known index names to their Yahoo
// Finance symbols, ordered so that more specific fragments win.
var wellKnownIndices = []struct {
	fragment string
	symbol   string
}{
	{"NIFTY", "^NSEI"},
	{"SENSEX", "^BSESN"},
	{"NIKKEI", "^N225"},
	{"FTSE", "^FTSE"},
	{"DOW", "^DJI"},
	{"S&P", "^GSPC"},
	{"SPX", "^GSPC"},
	{"NASDAQ", "^IXIC"},
	{"KOSPI", "^KS11"},
	{"SHANGHAI", "000001.SS"},
	{"HANG SENG", "^HSI"},
	{"DAX", "^GDAXI"},
	{"CAC", "^FCHI"},
}

// NormalizeSymbol maps an index to its Yahoo Finance ticker. A symbol that
// already carries a "^" or "." marker is used as-is; otherwise the index name
// (and the symbol itself) is matched against well-known index names.
func NormalizeSymbol(indexName, symbol string) string {
	if strings.ContainsAny(symbol, "^.") {
		return symbol
	}

	for _, needle := range []string{strings.ToUpper(indexName), strings.ToUpper(symbol)} {
		if needle == "" {
			continue
		}
		for _, idx := range wellKnownIndices {
			if strings.Contains(needle, idx.fragment) {
				return idx.symbol
			}
		}
	}

	return symbol
}
