package describer

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dhandho/internal/common"
	"github.com/ternarybob/dhandho/internal/interfaces"
)

const defaultClaudeModel = "claude-3-5-haiku-latest"

// ClaudeDescriber generates descriptions with the Anthropic API.
type ClaudeDescriber struct {
	client    anthropic.Client
	model     string
	language  string
	maxTokens int64
	timeout   time.Duration
	logger    arbor.ILogger
}

// NewClaudeDescriber creates an Anthropic-backed describer.
func NewClaudeDescriber(cfg *common.Config, logger arbor.ILogger) *ClaudeDescriber {
	model := cfg.Describer.Model
	if model == "" {
		model = defaultClaudeModel
	}

	maxTokens := int64(cfg.Describer.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 100
	}

	return &ClaudeDescriber{
		client:    anthropic.NewClient(option.WithAPIKey(cfg.Describer.APIKey)),
		model:     model,
		language:  cfg.Describer.Language,
		maxTokens: maxTokens,
		timeout:   cfg.DescriberTimeout(),
		logger:    logger,
	}
}

// Describe returns a one-sentence company summary, or the placeholder on
// any failure.
func (d *ClaudeDescriber) Describe(ctx context.Context, ticker string) string {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	resp, err := d.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(d.model),
		MaxTokens: d.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt(ticker, d.language))),
		},
	})
	if err != nil {
		d.logger.Warn().Str("ticker", ticker).Err(err).Msg("Claude description request failed")
		return Placeholder(ticker)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return Placeholder(ticker)
	}

	return text
}

func (d *ClaudeDescriber) Close() error { return nil }

var _ interfaces.Describer = (*ClaudeDescriber)(nil)
