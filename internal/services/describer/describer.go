// Package describer produces one-sentence company summaries through an
// external text-generation provider. Every failure path degrades to a
// placeholder string; callers never see an error.
package describer

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dhandho/internal/common"
	"github.com/ternarybob/dhandho/internal/interfaces"
)

// Placeholder is returned whenever a description cannot be produced.
func Placeholder(ticker string) string {
	return fmt.Sprintf("No description available for %s", ticker)
}

// prompt builds the single user-role prompt sent to every provider.
func prompt(ticker, language string) string {
	if language == "" {
		language = "English"
	}
	return fmt.Sprintf("Give a one-sentence description of the company behind the stock ticker %s, in %s.", ticker, language)
}

// NewDescriber creates the describer implementation selected by
// configuration. An unknown provider or missing credentials yield the noop
// describer so the rest of the application starts normally.
func NewDescriber(cfg *common.Config, logger arbor.ILogger) (interfaces.Describer, error) {
	if logger == nil {
		logger = common.GetLogger()
	}

	provider := cfg.Describer.Provider
	if provider == "" {
		provider = "openrouter"
	}

	if provider == "disabled" {
		logger.Info().Msg("Description generation disabled")
		return NewNoopDescriber(), nil
	}

	if cfg.Describer.APIKey == "" {
		logger.Warn().
			Str("provider", provider).
			Msg("Describer API key missing, descriptions degrade to placeholder")
		return NewNoopDescriber(), nil
	}

	logger.Info().
		Str("provider", provider).
		Str("model", cfg.Describer.Model).
		Msg("Initializing describer")

	switch provider {
	case "openrouter":
		return NewOpenRouterDescriber(cfg, logger), nil
	case "gemini":
		return NewGeminiDescriber(cfg, logger)
	case "claude":
		return NewClaudeDescriber(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported describer provider %q: must be openrouter, gemini, claude or disabled", provider)
	}
}

// NoopDescriber satisfies the interface when generation is disabled or
// unconfigured.
type NoopDescriber struct{}

// NewNoopDescriber creates a describer that always returns the placeholder.
func NewNoopDescriber() *NoopDescriber {
	return &NoopDescriber{}
}

func (d *NoopDescriber) Describe(_ context.Context, ticker string) string {
	return Placeholder(ticker)
}

func (d *NoopDescriber) Close() error { return nil }
