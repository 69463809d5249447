// Package config defines the bot configuration and provides validation
// helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by ARBBOT_* environment variables.
type Config struct {
	Limitless  LimitlessConfig  `toml:"limitless"`
	Polymarket PolymarketConfig `toml:"polymarket"`
	Trading    TradingConfig    `toml:"trading"`
	Redis      RedisConfig      `toml:"redis"`
	Notify     NotifyConfig     `toml:"notify"`
	LogLevel   string           `toml:"log_level"`
}

// LimitlessConfig holds the venue-A API endpoint and credentials.
type LimitlessConfig struct {
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	APISecret string `toml:"api_secret"`
}

// PolymarketConfig holds the venue-B API endpoint and credentials.
type PolymarketConfig struct {
	ClobHost      string `toml:"clob_host"`
	Address       string `toml:"address"`
	APIKey        string `toml:"api_key"`
	APISecret     string `toml:"api_secret"`
	APIPassphrase string `toml:"api_passphrase"`
}

// TradingConfig holds the arbitrage decision parameters.
type TradingConfig struct {
	Asset            string   `toml:"asset"`
	MinSpreadPct     float64  `toml:"min_spread_pct"`
	MaxBetAmount     float64  `toml:"max_bet_amount"`
	MaxStrikeDiff    float64  `toml:"max_strike_diff"`
	SlippagePct      float64  `toml:"slippage_pct"`
	ExecutionTimeout duration `toml:"execution_timeout"`
	PollInterval     duration `toml:"poll_interval"`
	CacheTTL         duration `toml:"cache_ttl"`
	RequestTimeout   duration `toml:"request_timeout"`
	RequestsPerSec   float64  `toml:"requests_per_sec"`
}

// RedisConfig holds connection parameters for the execution journal. An empty
// Addr disables journaling.
type RedisConfig struct {
	Addr         string `toml:"addr"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	PoolSize     int    `toml:"pool_size"`
	MaxRetries   int    `toml:"max_retries"`
	StreamMaxLen int    `toml:"stream_max_len"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// duration lets TOML files express time.Duration values as strings like "8s".
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Defaults returns a Config populated with reasonable default values. These
// match the values in config.example.toml.
func Defaults() Config {
	return Config{
		Limitless: LimitlessConfig{
			BaseURL: "https://api.limitless.exchange/api-v1",
		},
		Polymarket: PolymarketConfig{
			ClobHost: "https://clob.polymarket.com",
		},
		Trading: TradingConfig{
			Asset:            "BTC",
			MinSpreadPct:     3.0,
			MaxBetAmount:     10.0,
			MaxStrikeDiff:    200.0,
			SlippagePct:      0.5,
			ExecutionTimeout: duration{12 * time.Second},
			PollInterval:     duration{12 * time.Second},
			CacheTTL:         duration{8 * time.Second},
			RequestTimeout:   duration{8 * time.Second},
			RequestsPerSec:   20,
		},
		Redis: RedisConfig{
			PoolSize:     20,
			MaxRetries:   3,
			StreamMaxLen: 10000,
		},
		Notify: NotifyConfig{
			Events: []string{"arb_detected", "partial_fill", "execution_failed"},
		},
		LogLevel: "info",
	}
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks Config for obviously invalid or missing values and returns
// a combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if c.Limitless.BaseURL == "" {
		errs = append(errs, "limitless: base_url must be set")
	}
	if c.Limitless.APIKey == "" || c.Limitless.APISecret == "" {
		errs = append(errs, "limitless: api_key and api_secret must be set")
	}

	if c.Polymarket.ClobHost == "" {
		errs = append(errs, "polymarket: clob_host must be set")
	}
	if c.Polymarket.Address == "" {
		errs = append(errs, "polymarket: address must be set")
	}
	if c.Polymarket.APIKey == "" || c.Polymarket.APISecret == "" || c.Polymarket.APIPassphrase == "" {
		errs = append(errs, "polymarket: api_key, api_secret, and api_passphrase must be set")
	}

	if c.Trading.Asset == "" {
		errs = append(errs, "trading: asset must be set")
	}
	if c.Trading.MinSpreadPct < 0 {
		errs = append(errs, "trading: min_spread_pct must not be negative")
	}
	if c.Trading.MaxBetAmount <= 0 {
		errs = append(errs, "trading: max_bet_amount must be positive")
	}
	if c.Trading.MaxStrikeDiff < 0 {
		errs = append(errs, "trading: max_strike_diff must not be negative")
	}
	if c.Trading.SlippagePct < 0 || c.Trading.SlippagePct >= 100 {
		errs = append(errs, "trading: slippage_pct must be in [0, 100)")
	}
	if c.Trading.ExecutionTimeout.Duration <= 0 {
		errs = append(errs, "trading: execution_timeout must be positive")
	}
	if c.Trading.PollInterval.Duration <= 0 {
		errs = append(errs, "trading: poll_interval must be positive")
	}
	if c.Trading.CacheTTL.Duration <= 0 {
		errs = append(errs, "trading: cache_ttl must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %s", strings.Join(errs, "; "))
	}
	return nil
}
