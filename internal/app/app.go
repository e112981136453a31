// Package app wires the application components together from configuration.
package app

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dhandho/internal/common"
	"github.com/ternarybob/dhandho/internal/eodhd"
	"github.com/ternarybob/dhandho/internal/interfaces"
	"github.com/ternarybob/dhandho/internal/services/analyzer"
	"github.com/ternarybob/dhandho/internal/services/bot"
	"github.com/ternarybob/dhandho/internal/services/describer"
	"github.com/ternarybob/dhandho/internal/services/marketdata"
	"github.com/ternarybob/dhandho/internal/services/scheduler"
	"github.com/ternarybob/dhandho/internal/services/screening"
	"github.com/ternarybob/dhandho/internal/services/universe"
	"github.com/ternarybob/dhandho/internal/services/valuation"
	"github.com/ternarybob/dhandho/internal/telegram"
)

// App holds all application components and dependencies.
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	Transport  *telegram.Client
	MarketData interfaces.MarketDataService
	Universe   interfaces.UniverseService
	Valuation  *valuation.Model
	Describer  interfaces.Describer
	Analyzer   interfaces.Analyzer
	Screening  interfaces.ScreeningService
	Bot        *bot.Service
	Scheduler  *scheduler.Scheduler
}

// New builds the full service graph. Construction order is leaf-first:
// clients, then data services, then the analyzer and orchestration layers.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	transport := telegram.NewClient(cfg.Telegram.Token,
		telegram.WithLogger(logger),
		telegram.WithPollTimeout(cfg.Telegram.PollTimeout),
	)

	eodhdOpts := []eodhd.ClientOption{
		eodhd.WithLogger(logger),
	}
	if cfg.EODHD.BaseURL != "" {
		eodhdOpts = append(eodhdOpts, eodhd.WithBaseURL(cfg.EODHD.BaseURL))
	}
	if cfg.EODHD.RateLimit > 0 {
		eodhdOpts = append(eodhdOpts, eodhd.WithRateLimit(cfg.EODHD.RateLimit))
	}
	marketClient := eodhd.NewClient(cfg.EODHD.APIKey, eodhdOpts...)

	marketData, err := marketdata.NewService(marketClient, cfg.EODHD.CacheSize, marketdata.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create market data service: %w", err)
	}

	universeSvc := universe.NewService(universe.WithLogger(logger))

	valuationModel := valuation.NewModel(
		valuation.WithLogger(logger),
		valuation.WithBounds(cfg.Valuation.DefaultMultiple, cfg.Valuation.Floor, cfg.Valuation.Ceiling),
		valuation.WithBlendFactor(cfg.Valuation.BlendFactor),
	)

	describerSvc, err := describer.NewDescriber(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create describer: %w", err)
	}

	analyzerSvc, err := analyzer.NewService(
		marketData, valuationModel, describerSvc, cfg.EODHD.CacheSize,
		analyzer.WithLogger(logger),
		analyzer.WithHistoryYears(cfg.EODHD.HistoryYears),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	screeningSvc := screening.NewService(
		universeSvc, analyzerSvc, cfg.Screening.SafetyMarginThreshold,
		screening.WithLogger(logger),
		screening.WithMaxTickers(cfg.Screening.MaxTickers),
	)

	botSvc := bot.NewService(
		transport, screeningSvc, analyzerSvc, cfg.Screening.SafetyMarginThreshold,
		bot.WithLogger(logger),
	)

	return &App{
		Config:     cfg,
		Logger:     logger,
		Transport:  transport,
		MarketData: marketData,
		Universe:   universeSvc,
		Valuation:  valuationModel,
		Describer:  describerSvc,
		Analyzer:   analyzerSvc,
		Screening:  screeningSvc,
		Bot:        botSvc,
		Scheduler:  scheduler.NewScheduler(logger),
	}, nil
}

// Start verifies the transport token, registers the daily screening job and
// runs the bot update loop until the context is cancelled.
func (a *App) Start(ctx context.Context) error {
	username, err := a.Transport.Me(ctx)
	if err != nil {
		return fmt.Errorf("telegram token verification failed: %w", err)
	}
	a.Logger.Info().Str("bot", username).Msg("Telegram token verified")

	err = a.Scheduler.Schedule(a.Config.Screening.Schedule, "daily-screening", func() {
		a.Bot.RunScheduled(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to register daily screening: %w", err)
	}
	a.Scheduler.Start()

	return a.Bot.Run(ctx)
}

// Stop releases resources. Safe to call after Start returns.
func (a *App) Stop() {
	<-a.Scheduler.Stop().Done()
	if err := a.Describer.Close(); err != nil {
		a.Logger.Warn().Err(err).Msg("Describer close failed")
	}
	a.Logger.Info().Msg("Application stopped")
}
