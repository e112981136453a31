package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Telegram  TelegramConfig  `toml:"telegram"`
	EODHD     EODHDConfig     `toml:"eodhd"`
	Describer DescriberConfig `toml:"describer"`
	Screening ScreeningConfig `toml:"screening"`
	Valuation ValuationConfig `toml:"valuation"`
	Logging   LoggingConfig   `toml:"logging"`
}

// TelegramConfig contains the chat transport configuration.
// The bot token is required - the application refuses to start without it.
type TelegramConfig struct {
	Token       string `toml:"token"`        // Bot API token (required)
	PollTimeout int    `toml:"poll_timeout"` // Long-poll timeout in seconds (default: 30)
}

// EODHDConfig contains the market data provider configuration.
type EODHDConfig struct {
	APIKey       string `toml:"api_key"`       // EODHD API token
	BaseURL      string `toml:"base_url"`      // Override base URL (default: https://eodhd.com/api)
	RateLimit    int    `toml:"rate_limit"`    // Requests per second (default: 10)
	CacheSize    int    `toml:"cache_size"`    // LRU cache capacity per data kind (default: 128)
	HistoryYears int    `toml:"history_years"` // Price history lookback window in years (default: 5)
}

// DescriberConfig contains the text-generation service configuration.
// Missing credentials degrade to placeholder descriptions rather than
// preventing startup.
type DescriberConfig struct {
	Provider  string `toml:"provider"`   // "openrouter" (default), "gemini", "claude", or "disabled"
	APIKey    string `toml:"api_key"`    // Provider API key
	APIURL    string `toml:"api_url"`    // Chat-completions endpoint (openrouter provider only)
	Model     string `toml:"model"`      // Model identifier
	Timeout   string `toml:"timeout"`    // Per-call timeout as duration string (default: "10s")
	Language  string `toml:"language"`   // Language for generated descriptions (default: "English")
	MaxTokens int    `toml:"max_tokens"` // Maximum output tokens (default: 100)
}

// ScreeningConfig contains screening orchestration settings.
type ScreeningConfig struct {
	SafetyMarginThreshold float64 `toml:"safety_margin_threshold"` // Buy gate on discount (default: 0.3)
	MaxTickers            int     `toml:"max_tickers"`             // Per-index universe cap, 0 = unlimited
	Schedule              string  `toml:"schedule"`                // Cron expression for the daily run (default: "0 9 * * *")
}

// ValuationConfig bounds the industry reference multiple.
type ValuationConfig struct {
	DefaultMultiple float64 `toml:"default_multiple"` // Fallback P/E when industry and sector are unknown (default: 20.0)
	Ceiling         float64 `toml:"ceiling"`          // Hard cap on the reference multiple (default: 30.0)
	Floor           float64 `toml:"floor"`            // Lower bound for the trailing-P/E blend (default: 15.0)
	BlendFactor     float64 `toml:"blend_factor"`     // Trailing-P/E multiplier for the realism bound (default: 1.2)
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// DefaultConfig returns configuration with sensible defaults applied.
func DefaultConfig() *Config {
	return &Config{
		Telegram: TelegramConfig{
			PollTimeout: 30,
		},
		EODHD: EODHDConfig{
			RateLimit:    10,
			CacheSize:    128,
			HistoryYears: 5,
		},
		Describer: DescriberConfig{
			Provider:  "openrouter",
			APIURL:    "https://openrouter.ai/api/v1/chat/completions",
			Model:     "openai/gpt-4o-mini",
			Timeout:   "10s",
			Language:  "English",
			MaxTokens: 100,
		},
		Screening: ScreeningConfig{
			SafetyMarginThreshold: 0.3,
			MaxTickers:            0,
			Schedule:              "0 9 * * *",
		},
		Valuation: ValuationConfig{
			DefaultMultiple: 20.0,
			Ceiling:         30.0,
			Floor:           15.0,
			BlendFactor:     1.2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
	}
}

// LoadFromFiles loads configuration from defaults, then each TOML file in
// order (later files override earlier ones), then environment variables.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := DefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// DHANDHO_-prefixed variables win over the bare provider variables.
func applyEnvOverrides(config *Config) {
	if v := envFirst("DHANDHO_TELEGRAM_TOKEN", "TELEGRAM_TOKEN"); v != "" {
		config.Telegram.Token = v
	}
	if v := envFirst("DHANDHO_EODHD_API_KEY", "EODHD_API_TOKEN"); v != "" {
		config.EODHD.APIKey = v
	}
	if v := envFirst("DHANDHO_DESCRIBER_API_KEY", "OPENROUTER_API_KEY"); v != "" {
		config.Describer.APIKey = v
	}
	if v := os.Getenv("DHANDHO_DESCRIBER_PROVIDER"); v != "" {
		config.Describer.Provider = v
	}
	if v := os.Getenv("DHANDHO_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("DHANDHO_SCREENING_SCHEDULE"); v != "" {
		config.Screening.Schedule = v
	}
	if v := os.Getenv("DHANDHO_SCREENING_MAX_TICKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Screening.MaxTickers = n
		}
	}
}

func envFirst(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks the configuration for fatal problems.
// A missing Telegram token is fatal; missing describer credentials are not
// (description generation degrades to a placeholder).
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Telegram.Token) == "" {
		return fmt.Errorf("telegram token is required (set telegram.token or TELEGRAM_TOKEN)")
	}
	if c.EODHD.CacheSize <= 0 {
		return fmt.Errorf("eodhd.cache_size must be positive, got %d", c.EODHD.CacheSize)
	}
	if c.EODHD.HistoryYears <= 0 {
		return fmt.Errorf("eodhd.history_years must be positive, got %d", c.EODHD.HistoryYears)
	}
	if c.Screening.SafetyMarginThreshold < 0 || c.Screening.SafetyMarginThreshold >= 1 {
		return fmt.Errorf("screening.safety_margin_threshold must be in [0, 1), got %.2f", c.Screening.SafetyMarginThreshold)
	}
	if c.Valuation.Floor <= 0 || c.Valuation.Ceiling < c.Valuation.Floor {
		return fmt.Errorf("valuation bounds invalid: floor=%.1f ceiling=%.1f", c.Valuation.Floor, c.Valuation.Ceiling)
	}
	if _, err := time.ParseDuration(c.Describer.Timeout); err != nil {
		return fmt.Errorf("describer.timeout invalid: %w", err)
	}
	return nil
}

// DescriberTimeout returns the parsed describer timeout.
func (c *Config) DescriberTimeout() time.Duration {
	d, err := time.ParseDuration(c.Describer.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}
