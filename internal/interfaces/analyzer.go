package interfaces

import (
	"context"

	"github.com/ternarybob/dhandho/internal/models"
)

// AnalyzeOptions control a single analysis call. All option fields take
// part in the analyzer's memoization key.
type AnalyzeOptions struct {
	// SafetyMarginThreshold is the minimum fractional discount to
	// intrinsic value required for a buy recommendation (e.g. 0.3).
	SafetyMarginThreshold float64

	// IncludeDescription requests a natural-language company summary.
	// Disabled for bulk screening runs to avoid one text-generation
	// call per ticker.
	IncludeDescription bool
}

// Analyzer computes the intrinsic-value analysis for one ticker.
// A ticker with missing history, missing fundamentals or non-positive EPS
// is unanalyzable: the call returns (nil, false). Unexpected errors during
// computation are recovered, logged and likewise converted to an absent
// result - one bad ticker never aborts a batch run.
type Analyzer interface {
	Analyze(ctx context.Context, ticker string, opts AnalyzeOptions) (*models.Analysis, bool)
}
