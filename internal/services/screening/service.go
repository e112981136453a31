// Package screening orchestrates a value-screening run: it walks the
// ticker universe for the selected scope, analyzes each ticker and
// assembles the buy-candidate report.
package screening

import (
	"context"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dhandho/internal/common"
	"github.com/ternarybob/dhandho/internal/interfaces"
	"github.com/ternarybob/dhandho/internal/models"
)

// Service implements interfaces.ScreeningService.
type Service struct {
	universe   interfaces.UniverseService
	analyzer   interfaces.Analyzer
	logger     arbor.ILogger
	threshold  float64
	maxTickers int
	now        func() time.Time
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMaxTickers caps the number of tickers analyzed per index. Zero means
// no cap.
func WithMaxTickers(n int) ServiceOption {
	return func(s *Service) {
		s.maxTickers = n
	}
}

// WithClock sets the time source for report timestamps.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a screening service with the given buy threshold.
func NewService(universe interfaces.UniverseService, analyzer interfaces.Analyzer, threshold float64, opts ...ServiceOption) *Service {
	s := &Service{
		universe:  universe,
		analyzer:  analyzer,
		logger:    common.GetLogger(),
		threshold: threshold,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes one screening pass over the scope. Universe failures and
// unanalyzable tickers degrade; the run itself always produces a report.
func (s *Service) Run(ctx context.Context, scope models.Scope, opts interfaces.RunOptions) *models.Report {
	indices := scope.Indices()

	report := &models.Report{
		ID:          common.NewRunID(),
		Scope:       scope,
		GeneratedAt: s.now(),
	}

	s.logger.Info().
		Str("run_id", report.ID).
		Str("scope", string(scope)).
		Msg("Screening run started")

	// Universes are fetched up front so membership flags can be set
	// across indices when the scope covers both.
	universes := make(map[models.Index][]string, len(indices))
	members := make(map[models.Index]map[string]bool, len(indices))
	for _, index := range indices {
		tickers := s.universe.Fetch(ctx, index)
		if s.maxTickers > 0 && len(tickers) > s.maxTickers {
			tickers = tickers[:s.maxTickers]
		}
		universes[index] = tickers

		set := make(map[string]bool, len(tickers))
		for _, t := range tickers {
			set[t] = true
		}
		members[index] = set
	}

	for _, index := range indices {
		tickers := universes[index]
		section := models.ReportSection{Index: index}

		if len(tickers) == 0 {
			section.Unavailable = true
			report.Sections = append(report.Sections, section)
			s.notify(opts, renderSectionUnavailable(index))
			continue
		}

		s.notify(opts, renderSectionStart(index, len(tickers)))

		for _, ticker := range tickers {
			analysis, ok := s.analyzer.Analyze(ctx, ticker, interfaces.AnalyzeOptions{
				SafetyMarginThreshold: s.threshold,
				IncludeDescription:    false,
			})
			if !ok {
				continue
			}
			section.Analyzed++

			if !analysis.BuyRecommendation {
				continue
			}

			// Copy before flagging: the analyzer memoizes and may hand
			// the same record to both index sections.
			candidate := *analysis
			candidate.InNasdaq100 = index == models.IndexNasdaq100 || members[models.IndexNasdaq100][ticker]
			candidate.InSP500 = index == models.IndexSP500 || members[models.IndexSP500][ticker]
			section.Candidates = append(section.Candidates, candidate)
		}

		report.Sections = append(report.Sections, section)
		s.notify(opts, renderSectionResult(section))
	}

	s.logger.Info().
		Str("run_id", report.ID).
		Int("sections", len(report.Sections)).
		Msg("Screening run complete")

	return report
}

// notify emits a progress message on manual runs. Scheduled runs stay
// silent until the final consolidated report.
func (s *Service) notify(opts interfaces.RunOptions, text string) {
	if !opts.Manual || opts.Notify == nil {
		return
	}
	opts.Notify(text)
}

// Ensure Service implements the screening interface
var _ interfaces.ScreeningService = (*Service)(nil)
