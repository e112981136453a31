// Package common provides shared utilities across the application.
package common

import (
	"strings"
)

// NormalizeTicker converts an index-constituent symbol to the market-data
// provider's format. Wikipedia and the index publishers list class shares
// with a dot separator ("BRK.B", "BF.B"); the quote API expects a dash
// ("BRK-B", "BF-B"). Symbols are trimmed and uppercased.
func NormalizeTicker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return ""
	}
	return strings.ReplaceAll(symbol, ".", "-")
}

// NormalizeTickers normalizes a list of symbols, dropping empties.
func NormalizeTickers(symbols []string) []string {
	result := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if normalized := NormalizeTicker(s); normalized != "" {
			result = append(result, normalized)
		}
	}
	return result
}

// EODHDSymbol returns the EODHD API symbol for a normalized US ticker.
// Example: "AAPL" -> "AAPL.US". The screening universe is US-only
// (Nasdaq-100 and S&P 500), so the exchange suffix is fixed.
func EODHDSymbol(ticker string) string {
	ticker = NormalizeTicker(ticker)
	if ticker == "" {
		return ""
	}
	return ticker + ".US"
}

// IsTickerLike reports whether free-form chat text looks like a ticker
// symbol: 1-6 characters, letters with an optional class-share suffix.
// Used to decide if a plain message should trigger a single-ticker analysis.
func IsTickerLike(text string) bool {
	text = strings.TrimSpace(text)
	if len(text) == 0 || len(text) > 6 {
		return false
	}
	seenSep := false
	for i, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r == '.' || r == '-':
			// Separator must be interior and single
			if i == 0 || i == len(text)-1 || seenSep {
				return false
			}
			seenSep = true
		default:
			return false
		}
	}
	return true
}
