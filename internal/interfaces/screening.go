package interfaces

import (
	"context"

	"github.com/ternarybob/dhandho/internal/models"
)

// RunOptions control one screening run.
type RunOptions struct {
	// Manual marks a user-triggered run. Manual runs emit incremental
	// progress messages through Notify after each index section;
	// scheduled runs send only the final consolidated report.
	Manual bool

	// Notify delivers a plain-text message to the requesting chat.
	// May be nil, in which case progress emission is skipped.
	Notify func(text string)
}

// ScreeningService iterates the ticker universe for the selected scope,
// analyzes each ticker and assembles the buy-candidate report. A failed
// universe fetch is reported as an unavailable section and unanalyzable
// tickers are skipped; the run itself never fails.
type ScreeningService interface {
	Run(ctx context.Context, scope models.Scope, opts RunOptions) *models.Report
}
