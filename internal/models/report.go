package models

import (
	"time"
)

// ReportSection holds the outcome for one index within a screening run.
type ReportSection struct {
	Index Index

	// Unavailable marks a failed universe fetch. The section is still
	// reported ("universe unavailable"), never silently omitted.
	Unavailable bool

	// Analyzed counts tickers that produced a complete analysis.
	Analyzed int

	// Candidates are the analyses with a buy recommendation, in
	// universe order.
	Candidates []Analysis
}

// Report is the assembled result of one screening run. It is ephemeral:
// built per run, rendered to the transport, never persisted.
type Report struct {
	ID          string
	Scope       Scope
	GeneratedAt time.Time
	Sections    []ReportSection
}
