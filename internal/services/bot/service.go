// Package bot runs the chat command loop: long-polling the transport,
// dispatching commands and relaying screening results.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dhandho/internal/common"
	"github.com/ternarybob/dhandho/internal/interfaces"
	"github.com/ternarybob/dhandho/internal/models"
	"github.com/ternarybob/dhandho/internal/services/screening"
	"github.com/ternarybob/dhandho/internal/telegram"
)

const (
	welcomeText = "Once a day I screen the Nasdaq-100 and S&P 500 for stocks " +
		"that pass the Dhandho value checklist and send you the candidates.\n" +
		"Send a ticker (e.g. AAPL) for an on-demand analysis.\n" +
		"Use /screen to run a screening immediately.\n" +
		"Usage: /screen [all|nasdaq|sp500] (default: all)"

	usageScreenText = "Invalid scope. Usage: /screen [all|nasdaq|sp500]"

	apologyConflict   = "Another instance of this bot is already running. Please run only one at a time."
	apologyNetwork    = "A network error occurred. Please try again shortly."
	apologyBadRequest = "That request could not be processed. Please check your input."
	apologyUnknown    = "Something went wrong. Please try again shortly."

	pollRetryDelay = 5 * time.Second
)

// Service owns the update loop and the chat registry for scheduled runs.
type Service struct {
	transport interfaces.ChatTransport
	screening interfaces.ScreeningService
	analyzer  interfaces.Analyzer
	logger    arbor.ILogger
	threshold float64

	mu     sync.Mutex
	chats  map[int64]struct{}
	offset int64
}

// ServiceOption configures the Service.
type ServiceOption func(*Service)

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates the bot service.
func NewService(transport interfaces.ChatTransport, screeningSvc interfaces.ScreeningService, analyzer interfaces.Analyzer, threshold float64, opts ...ServiceOption) *Service {
	s := &Service{
		transport: transport,
		screening: screeningSvc,
		analyzer:  analyzer,
		logger:    common.GetLogger(),
		threshold: threshold,
		chats:     make(map[int64]struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run polls for updates until the context is cancelled. Transport errors
// are logged and retried; an invalid token is unrecoverable and returned.
func (s *Service) Run(ctx context.Context) error {
	s.logger.Info().Msg("Bot update loop started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Bot update loop stopped")
			return ctx.Err()
		default:
		}

		updates, err := s.transport.Updates(ctx, s.offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			var apiErr *telegram.APIError
			if errors.As(err, &apiErr) && apiErr.IsInvalidToken() {
				s.logger.Error().Err(err).Msg("Telegram token rejected, stopping")
				return err
			}

			s.logger.Warn().Err(err).Msg("Update poll failed, retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for _, update := range updates {
			if update.ID >= s.offset {
				s.offset = update.ID + 1
			}
			s.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate dispatches one incoming message. Handler panics are
// recovered so one bad message never kills the loop.
func (s *Service) handleUpdate(ctx context.Context, update interfaces.Update) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().
				Int("chat_id", int(update.ChatID)).
				Str("text", update.Text).
				Msg("Handler panic recovered")
			s.reply(ctx, update.ChatID, apologyUnknown)
		}
	}()

	text := strings.TrimSpace(update.Text)

	switch {
	case strings.HasPrefix(text, "/start"):
		s.handleStart(ctx, update.ChatID)
	case strings.HasPrefix(text, "/screen"):
		s.handleScreen(ctx, update.ChatID, text)
	case strings.HasPrefix(text, "/"):
		s.reply(ctx, update.ChatID, welcomeText)
	default:
		s.handleTicker(ctx, update.ChatID, text)
	}
}

// handleStart registers the chat for the daily screening and replies with
// usage.
func (s *Service) handleStart(ctx context.Context, chatID int64) {
	s.mu.Lock()
	s.chats[chatID] = struct{}{}
	s.mu.Unlock()

	s.logger.Info().Int("chat_id", int(chatID)).Msg("Chat registered for daily screening")
	s.reply(ctx, chatID, welcomeText)
}

// handleScreen runs a manual screening for the requested scope.
func (s *Service) handleScreen(ctx context.Context, chatID int64, text string) {
	args := strings.Fields(text)
	arg := ""
	if len(args) > 1 {
		arg = args[1]
	}

	scope, err := models.ParseScope(arg)
	if err != nil {
		s.reply(ctx, chatID, usageScreenText)
		return
	}

	s.logger.Info().
		Int("chat_id", int(chatID)).
		Str("scope", string(scope)).
		Msg("Manual screening requested")

	s.reply(ctx, chatID, fmt.Sprintf("Starting %s screening...", strings.ToUpper(string(scope))))

	report := s.screening.Run(ctx, scope, interfaces.RunOptions{
		Manual: true,
		Notify: func(t string) { s.reply(ctx, chatID, t) },
	})

	s.reply(ctx, chatID, screening.RenderReport(report))
}

// handleTicker treats free text as a single-ticker analysis request.
func (s *Service) handleTicker(ctx context.Context, chatID int64, text string) {
	ticker := common.NormalizeTicker(text)
	if !common.IsTickerLike(ticker) {
		s.reply(ctx, chatID, welcomeText)
		return
	}

	s.logger.Info().
		Int("chat_id", int(chatID)).
		Str("ticker", ticker).
		Msg("Single-ticker analysis requested")

	analysis, ok := s.analyzer.Analyze(ctx, ticker, interfaces.AnalyzeOptions{
		SafetyMarginThreshold: s.threshold,
		IncludeDescription:    true,
	})
	if !ok {
		s.reply(ctx, chatID, fmt.Sprintf("Data unavailable for %s.", ticker))
		return
	}

	s.reply(ctx, chatID, screening.RenderAnalysis(analysis))
}

// RunScheduled executes the daily all-scope screening and delivers the
// consolidated report to every registered chat.
func (s *Service) RunScheduled(ctx context.Context) {
	chats := s.RegisteredChats()
	if len(chats) == 0 {
		s.logger.Info().Msg("Scheduled screening skipped, no registered chats")
		return
	}

	report := s.screening.Run(ctx, models.ScopeAll, interfaces.RunOptions{Manual: false})
	text := screening.RenderReport(report)

	for _, chatID := range chats {
		s.reply(ctx, chatID, text)
	}

	s.logger.Info().
		Int("chats", len(chats)).
		Str("run_id", report.ID).
		Msg("Scheduled screening delivered")
}

// RegisteredChats returns the chats subscribed via /start.
func (s *Service) RegisteredChats() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	chats := make([]int64, 0, len(s.chats))
	for id := range s.chats {
		chats = append(chats, id)
	}
	return chats
}

// reply sends text to a chat, mapping transport failures to a logged
// apology where possible.
func (s *Service) reply(ctx context.Context, chatID int64, text string) {
	err := s.transport.Send(ctx, chatID, text)
	if err == nil {
		return
	}

	s.logger.Warn().
		Int("chat_id", int(chatID)).
		Err(err).
		Msg("Failed to send message")

	apology := apologyFor(err)
	if apology == "" {
		return
	}
	if retryErr := s.transport.Send(ctx, chatID, apology); retryErr != nil {
		s.logger.Warn().
			Int("chat_id", int(chatID)).
			Err(retryErr).
			Msg("Failed to send apology message")
	}
}

// apologyFor maps a transport error to a user-facing apology. An invalid
// token gets no apology - nothing can be delivered with a bad token.
func apologyFor(err error) string {
	var apiErr *telegram.APIError
	if !errors.As(err, &apiErr) {
		return apologyNetwork
	}

	switch {
	case apiErr.IsInvalidToken():
		return ""
	case apiErr.IsConflict():
		return apologyConflict
	case apiErr.IsBadRequest():
		return apologyBadRequest
	default:
		return apologyUnknown
	}
}
