package describer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"google.golang.org/genai"

	"github.com/ternarybob/dhandho/internal/common"
	"github.com/ternarybob/dhandho/internal/interfaces"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiDescriber generates descriptions with the Gemini API.
type GeminiDescriber struct {
	client   *genai.Client
	model    string
	language string
	timeout  time.Duration
	logger   arbor.ILogger
}

// NewGeminiDescriber creates a Gemini-backed describer.
func NewGeminiDescriber(cfg *common.Config, logger arbor.ILogger) (*GeminiDescriber, error) {
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.Describer.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Describer.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiDescriber{
		client:   client,
		model:    model,
		language: cfg.Describer.Language,
		timeout:  cfg.DescriberTimeout(),
		logger:   logger,
	}, nil
}

// Describe returns a one-sentence company summary, or the placeholder on
// any failure.
func (d *GeminiDescriber) Describe(ctx context.Context, ticker string) string {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	contents := []*genai.Content{
		{
			Role:  genai.RoleUser,
			Parts: []*genai.Part{genai.NewPartFromText(prompt(ticker, d.language))},
		},
	}

	resp, err := d.client.Models.GenerateContent(ctx, d.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.3)),
	})
	if err != nil {
		d.logger.Warn().Str("ticker", ticker).Err(err).Msg("Gemini description request failed")
		return Placeholder(ticker)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Placeholder(ticker)
	}

	return text
}

func (d *GeminiDescriber) Close() error { return nil }

var _ interfaces.Describer = (*GeminiDescriber)(nil)
