package analyzer

import (
	"math"

	"github.com/ternarybob/dhandho/internal/models"
)

const tradingDaysPerYear = 252

// stddev returns the sample standard deviation. Fewer than two samples
// yield 0.
func stddev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}

	return math.Sqrt(ss / float64(n-1))
}

// cagr returns the compound annual growth rate of the series, annualized
// at 252 trading days per year. Empty or degenerate series yield 0.
func cagr(series models.PriceSeries) float64 {
	n := series.Len()
	if n == 0 {
		return 0
	}

	first := series.First().Close
	last := series.Latest().Close
	if first <= 0 || last <= 0 {
		return 0
	}

	years := float64(n) / tradingDaysPerYear
	if years <= 0 {
		return 0
	}

	return math.Pow(last/first, 1/years) - 1
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
