package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/dhandho/internal/interfaces"
)

const (
	// DefaultBaseURL is the base URL for the Telegram Bot API.
	DefaultBaseURL = "https://api.telegram.org"

	// DefaultPollTimeout is the long-poll timeout in seconds.
	DefaultPollTimeout = 30

	// DefaultRateLimit is the default send rate (messages per second).
	// Telegram throttles bots at roughly 30 messages/second globally.
	DefaultRateLimit = 25
)

// Client is a Telegram Bot API client.
type Client struct {
	baseURL     string
	token       string
	pollTimeout int
	httpClient  *http.Client
	logger      arbor.ILogger
	limiter     *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets a logger.
func WithLogger(logger arbor.ILogger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithPollTimeout sets the getUpdates long-poll timeout in seconds.
func WithPollTimeout(seconds int) ClientOption {
	return func(c *Client) {
		if seconds > 0 {
			c.pollTimeout = seconds
		}
	}
}

// NewClient creates a new Telegram Bot API client.
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:     DefaultBaseURL,
		token:       token,
		pollTimeout: DefaultPollTimeout,
		limiter:     rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		// The HTTP timeout must exceed the long-poll timeout or every
		// idle poll turns into a client-side error.
		c.httpClient = &http.Client{
			Timeout: time.Duration(c.pollTimeout+15) * time.Second,
		}
	}

	return c
}

// call performs a Bot API method call and decodes the result envelope.
func (c *Client) call(ctx context.Context, method string, params url.Values, result interface{}) error {
	reqURL := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.URL.RawQuery = params.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if !envelope.OK {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Description: envelope.Description,
			Method:      method,
		}
	}

	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("failed to decode result: %w", err)
		}
	}

	return nil
}

// Updates long-polls for incoming messages newer than offset. Updates
// without a text message body are skipped.
func (c *Client) Updates(ctx context.Context, offset int64) ([]interfaces.Update, error) {
	params := url.Values{}
	params.Set("timeout", strconv.Itoa(c.pollTimeout))
	params.Set("allowed_updates", `["message"]`)
	if offset > 0 {
		params.Set("offset", strconv.FormatInt(offset, 10))
	}

	var raw []update
	if err := c.call(ctx, "getUpdates", params, &raw); err != nil {
		return nil, err
	}

	updates := make([]interfaces.Update, 0, len(raw))
	for _, u := range raw {
		if u.Message == nil || u.Message.Text == "" {
			continue
		}
		updates = append(updates, interfaces.Update{
			ID:     u.UpdateID,
			ChatID: u.Message.Chat.ID,
			Text:   u.Message.Text,
		})
	}

	return updates, nil
}

// Send delivers a plain-text message to a chat.
func (c *Client) Send(ctx context.Context, chatID int64, text string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("send rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("chat_id", strconv.FormatInt(chatID, 10))
	params.Set("text", text)

	if err := c.call(ctx, "sendMessage", params, nil); err != nil {
		return err
	}

	if c.logger != nil {
		c.logger.Debug().
			Int("chat_id", int(chatID)).
			Int("length", len(text)).
			Msg("Telegram message sent")
	}

	return nil
}

// Me verifies the token by calling getMe. Used at startup so an invalid
// token fails fast instead of surfacing as a polling loop error.
func (c *Client) Me(ctx context.Context) (string, error) {
	var result struct {
		Username string `json:"username"`
	}
	if err := c.call(ctx, "getMe", url.Values{}, &result); err != nil {
		return "", err
	}
	return result.Username, nil
}

// Ensure Client implements the transport interface
var _ interfaces.ChatTransport = (*Client)(nil)
