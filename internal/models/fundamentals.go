package models

import (
	"time"
)

// Fundamentals is a point-in-time snapshot of the named financial fields
// for one ticker. Fields the provider did not report are nil, never zero:
// the analyzer decides per field whether absence defaults or disqualifies.
type Fundamentals struct {
	Ticker   string
	Name     string
	Sector   string
	Industry string

	EPS            *float64 // trailing earnings per share
	ProfitMargin   *float64 // net profit margin, fractional (0.15 = 15%)
	ReturnOnEquity *float64 // trailing ROE, fractional
	TrailingPE     *float64 // trailing price-to-earnings ratio

	FetchedAt time.Time
}

// IsEmpty reports whether the snapshot carries no usable data. An empty
// snapshot marks the ticker unanalyzable for this run.
func (f *Fundamentals) IsEmpty() bool {
	if f == nil {
		return true
	}
	return f.EPS == nil && f.TrailingPE == nil && f.ProfitMargin == nil &&
		f.ReturnOnEquity == nil && f.Sector == "" && f.Industry == ""
}
