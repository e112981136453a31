package describer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/dhandho/internal/common"
	"github.com/ternarybob/dhandho/internal/interfaces"
)

// OpenRouterDescriber generates descriptions through an OpenAI-compatible
// chat-completions endpoint with bearer-token auth.
type OpenRouterDescriber struct {
	apiURL     string
	apiKey     string
	model      string
	language   string
	maxTokens  int
	timeout    time.Duration
	httpClient *http.Client
	logger     arbor.ILogger
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewOpenRouterDescriber creates a describer over a chat-completions API.
func NewOpenRouterDescriber(cfg *common.Config, logger arbor.ILogger) *OpenRouterDescriber {
	timeout := cfg.DescriberTimeout()
	return &OpenRouterDescriber{
		apiURL:     cfg.Describer.APIURL,
		apiKey:     cfg.Describer.APIKey,
		model:      cfg.Describer.Model,
		language:   cfg.Describer.Language,
		maxTokens:  cfg.Describer.MaxTokens,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Describe returns a one-sentence company summary, or the placeholder on
// any failure.
func (d *OpenRouterDescriber) Describe(ctx context.Context, ticker string) string {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	payload := chatRequest{
		Model: d.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt(ticker, d.language)},
		},
		MaxTokens: d.maxTokens,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		d.logger.Warn().Str("ticker", ticker).Err(err).Msg("Failed to encode description request")
		return Placeholder(ticker)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.apiURL, bytes.NewReader(body))
	if err != nil {
		d.logger.Warn().Str("ticker", ticker).Err(err).Msg("Failed to create description request")
		return Placeholder(ticker)
	}
	req.Header.Set("Authorization", "Bearer "+d.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		d.logger.Warn().Str("ticker", ticker).Err(err).Msg("Description request failed")
		return Placeholder(ticker)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		d.logger.Warn().
			Str("ticker", ticker).
			Int("status", resp.StatusCode).
			Str("body", truncate(string(raw), 200)).
			Msg("Description request rejected")
		return Placeholder(ticker)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		d.logger.Warn().Str("ticker", ticker).Err(err).Msg("Failed to decode description response")
		return Placeholder(ticker)
	}

	if parsed.Error != nil {
		d.logger.Warn().
			Str("ticker", ticker).
			Str("error", parsed.Error.Message).
			Msg("Description provider returned an error")
		return Placeholder(ticker)
	}

	if len(parsed.Choices) == 0 {
		return Placeholder(ticker)
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return Placeholder(ticker)
	}

	return text
}

func (d *OpenRouterDescriber) Close() error { return nil }

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ interfaces.Describer = (*OpenRouterDescriber)(nil)
