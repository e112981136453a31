// Package analyzer implements the intrinsic-value scoring core: it combines
// price history, fundamentals and the industry valuation model into a
// safety margin, a composite quality score and a buy recommendation.
package analyzer

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dhandho/internal/common"
	"github.com/ternarybob/dhandho/internal/interfaces"
	"github.com/ternarybob/dhandho/internal/models"
)

const (
	defaultHistoryYears = 5

	// minTrackRecordDays is roughly three years of trading days.
	minTrackRecordDays = 756

	moatProfitMargin     = 0.10
	moatReturnOnEquity   = 0.15
	consistencyStddevMax = 0.03
	trackRecordCAGRMin   = 0.05

	weightMoat        = 0.4
	weightConsistency = 0.3
	weightTrackRecord = 0.3

	minBuyScore = 0.6
)

// valuationModel is the slice of the valuation package this service uses.
type valuationModel interface {
	ReferenceMultiple(industry, sector string, trailingPE float64) float64
}

type resultKey struct {
	Ticker             string
	Threshold          float64
	IncludeDescription bool
}

// Service implements interfaces.Analyzer. Complete results are memoized in
// a bounded LRU; absent results are never cached, so upstream recovery is
// picked up on the next call.
type Service struct {
	market       interfaces.MarketDataService
	valuation    valuationModel
	describer    interfaces.Describer
	logger       arbor.ILogger
	historyYears int
	results      interfaces.Cache[resultKey, *models.Analysis]
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithHistoryYears sets the price-history lookback window.
func WithHistoryYears(years int) ServiceOption {
	return func(s *Service) {
		if years > 0 {
			s.historyYears = years
		}
	}
}

// NewService creates an analyzer over the given collaborators.
func NewService(market interfaces.MarketDataService, valuation valuationModel, describer interfaces.Describer, cacheSize int, opts ...ServiceOption) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = 128
	}

	results, err := lru.New[resultKey, *models.Analysis](cacheSize)
	if err != nil {
		return nil, err
	}

	s := &Service{
		market:       market,
		valuation:    valuation,
		describer:    describer,
		logger:       common.GetLogger(),
		historyYears: defaultHistoryYears,
		results:      results,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Analyze computes the full analysis for one ticker. Missing history,
// missing fundamentals or non-positive EPS make the result absent. Any
// panic during computation is recovered and likewise reported absent.
func (s *Service) Analyze(ctx context.Context, ticker string, opts interfaces.AnalyzeOptions) (result *models.Analysis, ok bool) {
	ticker = common.NormalizeTicker(ticker)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Str("ticker", ticker).
				Str("panic", fmt.Sprint(r)).
				Msg("Analysis aborted by unexpected error")
			result, ok = nil, false
		}
	}()

	key := resultKey{
		Ticker:             ticker,
		Threshold:          opts.SafetyMarginThreshold,
		IncludeDescription: opts.IncludeDescription,
	}
	if cached, hit := s.results.Get(key); hit {
		return cached, true
	}

	series, ok := s.market.History(ctx, ticker, s.historyYears)
	if !ok || series.Len() == 0 {
		return nil, false
	}

	funds, ok := s.market.Fundamentals(ctx, ticker)
	if !ok {
		return nil, false
	}

	currentPrice := series.Latest().Close

	if funds.EPS == nil || *funds.EPS <= 0 {
		s.logger.Warn().
			Str("ticker", ticker).
			Msg("EPS unavailable or non-positive, cannot value")
		return nil, false
	}
	eps := *funds.EPS

	trailingPE := currentPrice / eps
	if funds.TrailingPE != nil {
		trailingPE = *funds.TrailingPE
	}

	industryPE := s.valuation.ReferenceMultiple(funds.Industry, funds.Sector, trailingPE)

	intrinsicValue := eps * industryPE

	discount := 0.0
	if intrinsicValue > 0 {
		discount = (intrinsicValue - currentPrice) / intrinsicValue
	}
	safetyMargin := discount * 100

	if intrinsicValue > currentPrice*5 {
		s.logger.Warn().
			Str("ticker", ticker).
			Float64("intrinsic_value", intrinsicValue).
			Float64("current_price", currentPrice).
			Msg("Intrinsic value exceeds five times current price")
	}

	peDiscount := 0.0
	if industryPE > 0 {
		peDiscount = (industryPE - trailingPE) / industryPE * 100
	}

	profitMargin := 0.0
	if funds.ProfitMargin != nil {
		profitMargin = *funds.ProfitMargin
	}
	returnOnEquity := 0.0
	if funds.ReturnOnEquity != nil {
		returnOnEquity = *funds.ReturnOnEquity
	}

	moat := profitMargin > moatProfitMargin && returnOnEquity > moatReturnOnEquity
	consistency := stddev(series.DailyChanges()) < consistencyStddevMax
	growth := cagr(series)
	trackRecord := series.Len() > minTrackRecordDays && growth > trackRecordCAGRMin

	score := weightMoat*boolToFloat(moat) +
		weightConsistency*boolToFloat(consistency) +
		weightTrackRecord*boolToFloat(trackRecord)

	buy := discount > opts.SafetyMarginThreshold && score >= minBuyScore

	analysis := &models.Analysis{
		Ticker:            ticker,
		CurrentPrice:      round2(currentPrice),
		TrailingPE:        round2(trailingPE),
		IndustryPE:        round2(industryPE),
		IntrinsicValue:    round2(intrinsicValue),
		SafetyMargin:      round2(safetyMargin),
		PEDiscount:        round2(peDiscount),
		Moat:              moat,
		Consistency:       consistency,
		TrackRecord:       trackRecord,
		CAGR:              round2(growth * 100),
		Score:             round2(score),
		BuyRecommendation: buy,
	}

	if opts.IncludeDescription && s.describer != nil {
		// Failure isolation: the describer always returns a usable
		// string, so nothing here can disturb the numeric fields.
		analysis.Description = s.describer.Describe(ctx, ticker)
	}

	s.results.Add(key, analysis)

	s.logger.Debug().
		Str("ticker", ticker).
		Float64("intrinsic_value", analysis.IntrinsicValue).
		Float64("score", analysis.Score).
		Msg("Analysis complete")

	return analysis, true
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Ensure Service implements the analyzer interface
var _ interfaces.Analyzer = (*Service)(nil)
