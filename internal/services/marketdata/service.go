// Package marketdata adapts the EODHD client to the analyzer's view of the
// market: a close-price series and a fundamentals snapshot per ticker, with
// per-process LRU memoization.
package marketdata

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dhandho/internal/common"
	"github.com/ternarybob/dhandho/internal/eodhd"
	"github.com/ternarybob/dhandho/internal/interfaces"
	"github.com/ternarybob/dhandho/internal/models"
)

// quoteAPI is the slice of the EODHD client this service consumes.
type quoteAPI interface {
	GetEOD(ctx context.Context, symbol string, opts ...eodhd.QueryOption) (eodhd.EODResponse, error)
	GetFundamentals(ctx context.Context, symbol string) (*eodhd.FundamentalsResponse, error)
}

type historyKey struct {
	Ticker string
	Years  int
}

// Service fetches price history and fundamentals through the EODHD client.
// Successful results are memoized in bounded LRU caches keyed by ticker;
// failures are never cached, so a later run re-attempts the fetch.
type Service struct {
	api       quoteAPI
	logger    arbor.ILogger
	histories interfaces.Cache[historyKey, models.PriceSeries]
	funds     interfaces.Cache[string, *models.Fundamentals]
	now       func() time.Time
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock sets the time source. Used in tests to pin the lookback window.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a market-data service over the given client with
// caches of the given size.
func NewService(api quoteAPI, cacheSize int, opts ...ServiceOption) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = 128
	}

	histories, err := lru.New[historyKey, models.PriceSeries](cacheSize)
	if err != nil {
		return nil, err
	}
	funds, err := lru.New[string, *models.Fundamentals](cacheSize)
	if err != nil {
		return nil, err
	}

	s := &Service{
		api:       api,
		logger:    common.GetLogger(),
		histories: histories,
		funds:     funds,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// History returns the daily close series for the ticker over the lookback
// window, oldest first. Missing data and fetch errors report absent.
func (s *Service) History(ctx context.Context, ticker string, years int) (models.PriceSeries, bool) {
	ticker = common.NormalizeTicker(ticker)
	key := historyKey{Ticker: ticker, Years: years}

	if series, ok := s.histories.Get(key); ok {
		return series, true
	}

	to := s.now()
	from := to.AddDate(-years, 0, 0)

	raw, err := s.api.GetEOD(ctx, common.EODHDSymbol(ticker), eodhd.WithDateRange(from, to))
	if err != nil {
		s.logger.Warn().
			Str("ticker", ticker).
			Err(err).
			Msg("Failed to fetch price history")
		return nil, false
	}

	series := make(models.PriceSeries, 0, len(raw))
	for _, d := range raw {
		if d.Close <= 0 || d.Date.IsZero() {
			continue
		}
		series = append(series, models.PricePoint{Date: d.Date, Close: d.Close})
	}

	if len(series) == 0 {
		s.logger.Warn().
			Str("ticker", ticker).
			Msg("Price history empty")
		return nil, false
	}

	s.histories.Add(key, series)
	return series, true
}

// Fundamentals returns the fundamentals snapshot for the ticker. A snapshot
// with no usable fields reports absent.
func (s *Service) Fundamentals(ctx context.Context, ticker string) (*models.Fundamentals, bool) {
	ticker = common.NormalizeTicker(ticker)

	if f, ok := s.funds.Get(ticker); ok {
		return f, true
	}

	raw, err := s.api.GetFundamentals(ctx, common.EODHDSymbol(ticker))
	if err != nil {
		s.logger.Warn().
			Str("ticker", ticker).
			Err(err).
			Msg("Failed to fetch fundamentals")
		return nil, false
	}

	f := mapFundamentals(ticker, raw, s.now())
	if f.IsEmpty() {
		s.logger.Warn().
			Str("ticker", ticker).
			Msg("Fundamentals snapshot empty")
		return nil, false
	}

	s.funds.Add(ticker, f)
	return f, true
}

// mapFundamentals flattens the provider payload into the model snapshot,
// preserving nil for fields the provider reported as null.
func mapFundamentals(ticker string, raw *eodhd.FundamentalsResponse, fetchedAt time.Time) *models.Fundamentals {
	f := &models.Fundamentals{
		Ticker:    ticker,
		FetchedAt: fetchedAt,
	}
	if raw == nil {
		return f
	}

	if g := raw.General; g != nil {
		f.Name = g.Name
		f.Sector = g.Sector
		f.Industry = g.Industry
	}
	if h := raw.Highlights; h != nil {
		f.EPS = h.EarningsShare
		f.ProfitMargin = h.ProfitMargin
		f.ReturnOnEquity = h.ReturnOnEquityTTM
	}
	if v := raw.Valuation; v != nil {
		f.TrailingPE = v.TrailingPE
	}

	return f
}

// Ensure Service implements the market-data interface
var _ interfaces.MarketDataService = (*Service)(nil)
