package models

import (
	"time"
)

// PricePoint is one daily close sample.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries is an ordered sequence of daily closes for one ticker,
// strictly date-ascending with the most recent sample last. A valid series
// is non-empty and contains no duplicate dates; it is never mutated after
// creation.
type PriceSeries []PricePoint

// Len returns the number of trading-day samples in the series.
func (s PriceSeries) Len() int {
	return len(s)
}

// First returns the oldest sample. Callers must check Len() > 0 first.
func (s PriceSeries) First() PricePoint {
	return s[0]
}

// Latest returns the most recent sample. Callers must check Len() > 0 first.
func (s PriceSeries) Latest() PricePoint {
	return s[len(s)-1]
}

// DailyChanges returns the day-over-day fractional price changes.
// A series of n samples yields n-1 changes. Samples following a
// non-positive close are skipped to avoid division artifacts.
func (s PriceSeries) DailyChanges() []float64 {
	if len(s) < 2 {
		return nil
	}
	changes := make([]float64, 0, len(s)-1)
	for i := 1; i < len(s); i++ {
		prev := s[i-1].Close
		if prev <= 0 {
			continue
		}
		changes = append(changes, (s[i].Close-prev)/prev)
	}
	return changes
}
