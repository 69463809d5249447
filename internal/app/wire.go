package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/alanyoungcy/arbbot/internal/cache/memory"
	"github.com/alanyoungcy/arbbot/internal/config"
	"github.com/alanyoungcy/arbbot/internal/domain"
	"github.com/alanyoungcy/arbbot/internal/engine"
	"github.com/alanyoungcy/arbbot/internal/executor"
	"github.com/alanyoungcy/arbbot/internal/journal"
	"github.com/alanyoungcy/arbbot/internal/matcher"
	"github.com/alanyoungcy/arbbot/internal/notify"
	"github.com/alanyoungcy/arbbot/internal/platform/limitless"
	"github.com/alanyoungcy/arbbot/internal/platform/polymarket"
	"github.com/alanyoungcy/arbbot/internal/scanner"
)

// Dependencies bundles every component the scan loop needs. It is constructed
// by Wire and torn down by the returned cleanup function.
type Dependencies struct {
	VenueA   domain.VenueClient
	VenueB   domain.VenueClient
	Markets  *memory.Cache[[]domain.VenueMarket]
	Matcher  *matcher.Matcher
	Engine   *engine.Engine
	Executor *executor.Executor
	Journal  journal.Journal
	Notifier *notify.Notifier
	Scanner  *scanner.Scanner
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that should
// be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{}

	// --- Venue clients ---
	deps.VenueA = limitless.NewClient(limitless.Config{
		BaseURL:        cfg.Limitless.BaseURL,
		Asset:          cfg.Trading.Asset,
		APIKey:         cfg.Limitless.APIKey,
		APISecret:      cfg.Limitless.APISecret,
		RequestTimeout: cfg.Trading.RequestTimeout.Duration,
		RequestsPerSec: cfg.Trading.RequestsPerSec,
	})
	deps.VenueB = polymarket.NewClient(polymarket.Config{
		BaseURL:        cfg.Polymarket.ClobHost,
		Asset:          cfg.Trading.Asset,
		Address:        cfg.Polymarket.Address,
		APIKey:         cfg.Polymarket.APIKey,
		APISecret:      cfg.Polymarket.APISecret,
		APIPassphrase:  cfg.Polymarket.APIPassphrase,
		RequestTimeout: cfg.Trading.RequestTimeout.Duration,
		RequestsPerSec: cfg.Trading.RequestsPerSec,
	})

	// --- Market list cache ---
	deps.Markets = memory.New[[]domain.VenueMarket](cfg.Trading.CacheTTL.Duration)

	// --- Pipeline ---
	deps.Matcher = matcher.New(
		deps.VenueA,
		deps.VenueB,
		decimal.NewFromFloat(cfg.Trading.MaxStrikeDiff),
		deps.Markets,
		logger,
	)
	deps.Engine = engine.New(
		decimal.NewFromFloat(cfg.Trading.MinSpreadPct),
		decimal.NewFromFloat(cfg.Trading.MaxBetAmount),
		decimal.NewFromFloat(cfg.Trading.SlippagePct),
		logger,
	)
	deps.Executor = executor.New(
		deps.VenueA,
		deps.VenueB,
		cfg.Trading.ExecutionTimeout.Duration,
		logger,
	)

	// --- Execution journal (optional; empty addr disables) ---
	if cfg.Redis.Addr != "" {
		rj, err := journal.NewRedis(ctx, journal.RedisConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			MaxLen:     int64(cfg.Redis.StreamMaxLen),
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis journal: %w", err)
		}
		closers = append(closers, func() { _ = rj.Close() })
		deps.Journal = rj
	} else {
		deps.Journal = journal.Noop{}
	}

	// --- Notifications ---
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(
			cfg.Notify.TelegramToken,
			cfg.Notify.TelegramChatID,
		))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	deps.Notifier = notify.New(senders, cfg.Notify.Events, logger)

	// --- Scanner ---
	deps.Scanner = scanner.New(
		deps.Matcher,
		deps.Engine,
		deps.Executor,
		deps.VenueA,
		deps.VenueB,
		deps.Markets,
		deps.Journal,
		deps.Notifier,
		cfg.Trading.PollInterval.Duration,
		logger,
	)

	return deps, cleanup, nil
}
