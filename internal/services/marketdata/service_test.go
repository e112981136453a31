package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/dhandho/internal/eodhd"
)

type fakeAPI struct {
	eodCalls  int
	fundCalls int
	eod       eodhd.EODResponse
	eodErr    error
	funds     *eodhd.FundamentalsResponse
	fundErr   error
}

func (f *fakeAPI) GetEOD(_ context.Context, _ string, _ ...eodhd.QueryOption) (eodhd.EODResponse, error) {
	f.eodCalls++
	return f.eod, f.eodErr
}

func (f *fakeAPI) GetFundamentals(_ context.Context, _ string) (*eodhd.FundamentalsResponse, error) {
	f.fundCalls++
	return f.funds, f.fundErr
}

func ptr(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestHistory(t *testing.T) {
	api := &fakeAPI{
		eod: eodhd.EODResponse{
			{Date: day("2024-01-02"), Close: 101.5},
			{Date: day("2024-01-03"), Close: 0}, // dropped
			{Date: day("2024-01-04"), Close: 103.25},
		},
	}

	svc, err := NewService(api, 16)
	require.NoError(t, err)

	series, ok := svc.History(context.Background(), "aapl", 5)
	require.True(t, ok)
	require.Equal(t, 2, series.Len())
	assert.Equal(t, 101.5, series.First().Close)
	assert.Equal(t, 103.25, series.Latest().Close)

	// Second call served from cache
	_, ok = svc.History(context.Background(), "AAPL", 5)
	require.True(t, ok)
	assert.Equal(t, 1, api.eodCalls)
}

func TestHistoryEvictionAtCapacity(t *testing.T) {
	api := &fakeAPI{
		eod: eodhd.EODResponse{{Date: day("2024-01-02"), Close: 100}},
	}

	svc, err := NewService(api, 2)
	require.NoError(t, err)

	for _, ticker := range []string{"AAA", "BBB", "CCC"} {
		_, ok := svc.History(context.Background(), ticker, 5)
		require.True(t, ok)
	}
	assert.Equal(t, 3, api.eodCalls)

	// CCC is recent and still cached
	_, ok := svc.History(context.Background(), "CCC", 5)
	require.True(t, ok)
	assert.Equal(t, 3, api.eodCalls)

	// AAA was evicted when CCC came in and must be refetched
	_, ok = svc.History(context.Background(), "AAA", 5)
	require.True(t, ok)
	assert.Equal(t, 4, api.eodCalls)
}

func TestHistoryErrorNotCached(t *testing.T) {
	api := &fakeAPI{eodErr: errors.New("boom")}

	svc, err := NewService(api, 16)
	require.NoError(t, err)

	_, ok := svc.History(context.Background(), "AAPL", 5)
	assert.False(t, ok)

	// Failures re-attempt on the next call
	_, ok = svc.History(context.Background(), "AAPL", 5)
	assert.False(t, ok)
	assert.Equal(t, 2, api.eodCalls)
}

func TestHistoryEmpty(t *testing.T) {
	api := &fakeAPI{eod: eodhd.EODResponse{}}

	svc, err := NewService(api, 16)
	require.NoError(t, err)

	_, ok := svc.History(context.Background(), "AAPL", 5)
	assert.False(t, ok)
}

func TestFundamentals(t *testing.T) {
	api := &fakeAPI{
		funds: &eodhd.FundamentalsResponse{
			General: &eodhd.GeneralInfo{
				Name:     "Apple Inc",
				Sector:   "Technology",
				Industry: "Consumer Electronics",
			},
			Highlights: &eodhd.Highlights{
				EarningsShare:     ptr(6.42),
				ProfitMargin:      ptr(0.25),
				ReturnOnEquityTTM: ptr(1.45),
			},
			Valuation: &eodhd.Valuation{TrailingPE: ptr(28.5)},
		},
	}

	svc, err := NewService(api, 16)
	require.NoError(t, err)

	f, ok := svc.Fundamentals(context.Background(), "AAPL")
	require.True(t, ok)
	assert.Equal(t, "AAPL", f.Ticker)
	assert.Equal(t, "Technology", f.Sector)
	require.NotNil(t, f.EPS)
	assert.Equal(t, 6.42, *f.EPS)
	require.NotNil(t, f.TrailingPE)
	assert.Equal(t, 28.5, *f.TrailingPE)
	assert.False(t, f.FetchedAt.IsZero())

	_, ok = svc.Fundamentals(context.Background(), "AAPL")
	require.True(t, ok)
	assert.Equal(t, 1, api.fundCalls)
}

func TestFundamentalsNullFieldsStayNil(t *testing.T) {
	api := &fakeAPI{
		funds: &eodhd.FundamentalsResponse{
			General:    &eodhd.GeneralInfo{Sector: "Energy", Industry: "Oil & Gas E&P"},
			Highlights: &eodhd.Highlights{ProfitMargin: ptr(0.05)},
		},
	}

	svc, err := NewService(api, 16)
	require.NoError(t, err)

	f, ok := svc.Fundamentals(context.Background(), "XOM")
	require.True(t, ok)
	assert.Nil(t, f.EPS)
	assert.Nil(t, f.TrailingPE)
	require.NotNil(t, f.ProfitMargin)
	assert.Equal(t, 0.05, *f.ProfitMargin)
}

func TestFundamentalsEmptySnapshotAbsent(t *testing.T) {
	api := &fakeAPI{funds: &eodhd.FundamentalsResponse{}}

	svc, err := NewService(api, 16)
	require.NoError(t, err)

	_, ok := svc.Fundamentals(context.Background(), "ZZZ")
	assert.False(t, ok)

	// Empty snapshots are not cached either
	_, _ = svc.Fundamentals(context.Background(), "ZZZ")
	assert.Equal(t, 2, api.fundCalls)
}
