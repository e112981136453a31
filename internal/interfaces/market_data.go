// Package interfaces defines the service contracts wired together in
// internal/app. Services depend on these interfaces, not on each other's
// concrete types, so tests can substitute fakes.
package interfaces

import (
	"context"

	"github.com/ternarybob/dhandho/internal/models"
)

// MarketDataService retrieves price history and fundamentals for a ticker.
// Both operations are best-effort: any network or parsing failure is logged
// by the implementation and surfaced as an absent result (ok == false),
// never as an error. Results are memoized per (ticker, window) / (ticker)
// within the process lifetime; failed fetches are not cached, so a later
// run re-attempts them.
type MarketDataService interface {
	// History returns the daily close series over the given lookback
	// window in years, oldest first.
	History(ctx context.Context, ticker string, years int) (models.PriceSeries, bool)

	// Fundamentals returns the fundamentals snapshot for the ticker.
	// An empty snapshot is reported as absent.
	Fundamentals(ctx context.Context, ticker string) (*models.Fundamentals, bool)
}
