package analyzer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/dhandho/internal/interfaces"
	"github.com/ternarybob/dhandho/internal/models"
)

type fakeMarket struct {
	series       models.PriceSeries
	seriesOK     bool
	funds        *models.Fundamentals
	fundsOK      bool
	historyCalls int
}

func (f *fakeMarket) History(_ context.Context, _ string, _ int) (models.PriceSeries, bool) {
	f.historyCalls++
	return f.series, f.seriesOK
}

func (f *fakeMarket) Fundamentals(_ context.Context, _ string) (*models.Fundamentals, bool) {
	return f.funds, f.fundsOK
}

type fixedValuation struct {
	multiple float64
}

func (f *fixedValuation) ReferenceMultiple(_, _ string, _ float64) float64 {
	return f.multiple
}

type fakeDescriber struct {
	text  string
	calls int
}

func (f *fakeDescriber) Describe(_ context.Context, _ string) string {
	f.calls++
	return f.text
}

func (f *fakeDescriber) Close() error { return nil }

func ptr(v float64) *float64 { return &v }

func seriesOf(closes ...float64) models.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := make(models.PriceSeries, 0, len(closes))
	for i, c := range closes {
		s = append(s, models.PricePoint{Date: start.AddDate(0, 0, i), Close: c})
	}
	return s
}

func newTestService(t *testing.T, market *fakeMarket, multiple float64) *Service {
	t.Helper()
	svc, err := NewService(market, &fixedValuation{multiple: multiple}, &fakeDescriber{text: "a company"}, 16)
	require.NoError(t, err)
	return svc
}

func TestAnalyzeOvervaluedNoBuy(t *testing.T) {
	market := &fakeMarket{
		series:   seriesOf(100, 102, 101, 105, 108),
		seriesOK: true,
		funds: &models.Fundamentals{
			Ticker: "XYZ",
			EPS:    ptr(5),
		},
		fundsOK: true,
	}
	svc := newTestService(t, market, 15)

	a, ok := svc.Analyze(context.Background(), "XYZ", interfaces.AnalyzeOptions{SafetyMarginThreshold: 0.3})
	require.True(t, ok)

	assert.Equal(t, 108.0, a.CurrentPrice)
	assert.Equal(t, 75.0, a.IntrinsicValue)
	assert.Equal(t, 21.6, a.TrailingPE) // falls back to price/eps
	assert.Equal(t, 15.0, a.IndustryPE)
	assert.Equal(t, -44.0, a.SafetyMargin)
	assert.False(t, a.TrackRecord) // five samples is far short of three years
	assert.False(t, a.BuyRecommendation)
}

func TestAnalyzeAbsentEPS(t *testing.T) {
	tests := []struct {
		name string
		eps  *float64
	}{
		{"nil", nil},
		{"zero", ptr(0)},
		{"negative", ptr(-2.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			market := &fakeMarket{
				series:   seriesOf(100, 101, 102),
				seriesOK: true,
				funds:    &models.Fundamentals{Ticker: "XYZ", EPS: tt.eps, Sector: "Technology"},
				fundsOK:  true,
			}
			svc := newTestService(t, market, 15)

			_, ok := svc.Analyze(context.Background(), "XYZ", interfaces.AnalyzeOptions{SafetyMarginThreshold: 0.3})
			assert.False(t, ok)
		})
	}
}

func TestAnalyzeMissingHistory(t *testing.T) {
	market := &fakeMarket{seriesOK: false}
	svc := newTestService(t, market, 15)

	_, ok := svc.Analyze(context.Background(), "XYZ", interfaces.AnalyzeOptions{})
	assert.False(t, ok)
}

func TestAnalyzeMissingFundamentals(t *testing.T) {
	market := &fakeMarket{
		series:   seriesOf(100, 101),
		seriesOK: true,
		fundsOK:  false,
	}
	svc := newTestService(t, market, 15)

	_, ok := svc.Analyze(context.Background(), "XYZ", interfaces.AnalyzeOptions{})
	assert.False(t, ok)
}

func TestAnalyzeBuyRecommendation(t *testing.T) {
	// Deep discount with strong quality flags: price 50, EPS 5, multiple 20
	// intrinsic 100, discount 0.5. Moat and consistency true: score 0.7.
	closes := make([]float64, 0, 800)
	price := 30.0
	for i := 0; i < 800; i++ {
		price *= 1.001 // gentle steady climb, low volatility, cagr > 5%
		closes = append(closes, price)
	}
	closes = append(closes, 50)

	market := &fakeMarket{
		series:   seriesOf(closes...),
		seriesOK: true,
		funds: &models.Fundamentals{
			Ticker:         "DEEP",
			EPS:            ptr(5),
			ProfitMargin:   ptr(0.2),
			ReturnOnEquity: ptr(0.25),
			TrailingPE:     ptr(10),
		},
		fundsOK: true,
	}
	svc := newTestService(t, market, 20)

	a, ok := svc.Analyze(context.Background(), "DEEP", interfaces.AnalyzeOptions{SafetyMarginThreshold: 0.3})
	require.True(t, ok)

	assert.Equal(t, 100.0, a.IntrinsicValue)
	assert.Equal(t, 50.0, a.SafetyMargin)
	assert.True(t, a.Moat)
	assert.True(t, a.TrackRecord)
	assert.GreaterOrEqual(t, a.Score, 0.6)
	assert.True(t, a.BuyRecommendation)
}

func TestAnalyzeScoreBounds(t *testing.T) {
	market := &fakeMarket{
		series:   seriesOf(100, 102, 101, 105, 108),
		seriesOK: true,
		funds: &models.Fundamentals{
			Ticker:         "XYZ",
			EPS:            ptr(5),
			ProfitMargin:   ptr(0.2),
			ReturnOnEquity: ptr(0.25),
		},
		fundsOK: true,
	}
	svc := newTestService(t, market, 15)

	a, ok := svc.Analyze(context.Background(), "XYZ", interfaces.AnalyzeOptions{SafetyMarginThreshold: 0.3})
	require.True(t, ok)

	assert.GreaterOrEqual(t, a.Score, 0.0)
	assert.LessOrEqual(t, a.Score, 1.0)
	// moat + consistency true, track record false
	assert.Equal(t, 0.7, a.Score)
}

func TestAnalyzeMemoization(t *testing.T) {
	market := &fakeMarket{
		series:   seriesOf(100, 102, 101, 105, 108),
		seriesOK: true,
		funds:    &models.Fundamentals{Ticker: "XYZ", EPS: ptr(5)},
		fundsOK:  true,
	}
	svc := newTestService(t, market, 15)

	opts := interfaces.AnalyzeOptions{SafetyMarginThreshold: 0.3}
	first, ok := svc.Analyze(context.Background(), "XYZ", opts)
	require.True(t, ok)
	second, ok := svc.Analyze(context.Background(), "XYZ", opts)
	require.True(t, ok)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, market.historyCalls)

	// Different options are a different cache entry
	_, ok = svc.Analyze(context.Background(), "XYZ", interfaces.AnalyzeOptions{SafetyMarginThreshold: 0.2})
	require.True(t, ok)
	assert.Equal(t, 2, market.historyCalls)
}

func TestAnalyzeDescription(t *testing.T) {
	market := &fakeMarket{
		series:   seriesOf(100, 102, 101, 105, 108),
		seriesOK: true,
		funds:    &models.Fundamentals{Ticker: "XYZ", EPS: ptr(5)},
		fundsOK:  true,
	}
	desc := &fakeDescriber{text: "description unavailable for XYZ"}
	svc, err := NewService(market, &fixedValuation{multiple: 15}, desc, 16)
	require.NoError(t, err)

	// Bulk mode skips the describer
	a, ok := svc.Analyze(context.Background(), "XYZ", interfaces.AnalyzeOptions{SafetyMarginThreshold: 0.3})
	require.True(t, ok)
	assert.Empty(t, a.Description)
	assert.Equal(t, 0, desc.calls)

	// A degraded describer fills the placeholder without touching numerics
	a, ok = svc.Analyze(context.Background(), "XYZ", interfaces.AnalyzeOptions{SafetyMarginThreshold: 0.3, IncludeDescription: true})
	require.True(t, ok)
	assert.Equal(t, "description unavailable for XYZ", a.Description)
	assert.Equal(t, 75.0, a.IntrinsicValue)
}

func TestAnalyzePanicRecovered(t *testing.T) {
	// A nil valuation model makes the computation panic; the boundary
	// converts it to an absent result.
	market := &fakeMarket{
		series:   seriesOf(100, 102),
		seriesOK: true,
		funds:    &models.Fundamentals{Ticker: "XYZ", EPS: ptr(5)},
		fundsOK:  true,
	}
	svc, err := NewService(market, nil, &fakeDescriber{}, 16)
	require.NoError(t, err)

	a, ok := svc.Analyze(context.Background(), "XYZ", interfaces.AnalyzeOptions{})
	assert.False(t, ok)
	assert.Nil(t, a)
}
