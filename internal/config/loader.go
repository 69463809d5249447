package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies ARBBOT_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known ARBBOT_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject secrets at deploy time without touching the TOML
// file.
func applyEnvOverrides(cfg *Config) {
	// ── Limitless ──
	setStr(&cfg.Limitless.BaseURL, "ARBBOT_LIMITLESS_BASE_URL")
	setStr(&cfg.Limitless.APIKey, "ARBBOT_LIMITLESS_API_KEY")
	setStr(&cfg.Limitless.APISecret, "ARBBOT_LIMITLESS_API_SECRET")

	// ── Polymarket ──
	setStr(&cfg.Polymarket.ClobHost, "ARBBOT_POLYMARKET_CLOB_HOST")
	setStr(&cfg.Polymarket.Address, "ARBBOT_POLYMARKET_ADDRESS")
	setStr(&cfg.Polymarket.APIKey, "ARBBOT_POLYMARKET_API_KEY")
	setStr(&cfg.Polymarket.APISecret, "ARBBOT_POLYMARKET_API_SECRET")
	setStr(&cfg.Polymarket.APIPassphrase, "ARBBOT_POLYMARKET_API_PASSPHRASE")

	// ── Trading ──
	setStr(&cfg.Trading.Asset, "ARBBOT_TRADING_ASSET")
	setFloat64(&cfg.Trading.MinSpreadPct, "ARBBOT_TRADING_MIN_SPREAD_PCT")
	setFloat64(&cfg.Trading.MaxBetAmount, "ARBBOT_TRADING_MAX_BET_AMOUNT")
	setFloat64(&cfg.Trading.MaxStrikeDiff, "ARBBOT_TRADING_MAX_STRIKE_DIFF")
	setFloat64(&cfg.Trading.SlippagePct, "ARBBOT_TRADING_SLIPPAGE_PCT")
	setDuration(&cfg.Trading.ExecutionTimeout, "ARBBOT_TRADING_EXECUTION_TIMEOUT")
	setDuration(&cfg.Trading.PollInterval, "ARBBOT_TRADING_POLL_INTERVAL")
	setDuration(&cfg.Trading.CacheTTL, "ARBBOT_TRADING_CACHE_TTL")
	setDuration(&cfg.Trading.RequestTimeout, "ARBBOT_TRADING_REQUEST_TIMEOUT")
	setFloat64(&cfg.Trading.RequestsPerSec, "ARBBOT_TRADING_REQUESTS_PER_SEC")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "ARBBOT_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "ARBBOT_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "ARBBOT_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "ARBBOT_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "ARBBOT_REDIS_MAX_RETRIES")
	setInt(&cfg.Redis.StreamMaxLen, "ARBBOT_REDIS_STREAM_MAX_LEN")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "ARBBOT_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "ARBBOT_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "ARBBOT_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "ARBBOT_NOTIFY_EVENTS")

	// ── Top-level ──
	setStr(&cfg.LogLevel, "ARBBOT_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
