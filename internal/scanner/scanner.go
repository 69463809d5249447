// Package scanner drives the arbitrage pipeline: every poll interval it asks
// the matcher for cross-venue pairs, evaluates each pair's quotes through the
// engine, and hands qualifying opportunities to the executor. One cycle runs
// to completion before the next starts; pairs within a cycle are processed
// concurrently and independently.
package scanner

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/alanyoungcy/arbbot/internal/cache/memory"
	"github.com/alanyoungcy/arbbot/internal/domain"
	"github.com/alanyoungcy/arbbot/internal/engine"
	"github.com/alanyoungcy/arbbot/internal/executor"
	"github.com/alanyoungcy/arbbot/internal/journal"
	"github.com/alanyoungcy/arbbot/internal/matcher"
	"github.com/alanyoungcy/arbbot/internal/notify"
)

// Scanner owns the poll loop and the per-cycle bookkeeping.
type Scanner struct {
	matcher  *matcher.Matcher
	engine   *engine.Engine
	executor *executor.Executor
	venueA   domain.VenueClient
	venueB   domain.VenueClient
	markets  *memory.Cache[[]domain.VenueMarket]
	journal  journal.Journal
	notifier *notify.Notifier

	pollInterval time.Duration
	logger       *slog.Logger

	scans         atomic.Int64
	opportunities atomic.Int64
	executed      atomic.Int64
	succeeded     atomic.Int64
	failed        atomic.Int64
}

// New creates a Scanner. markets is the same cache the matcher memoizes
// venue fetches through; the scanner sweeps it at the end of every cycle.
func New(
	m *matcher.Matcher,
	e *engine.Engine,
	x *executor.Executor,
	venueA, venueB domain.VenueClient,
	markets *memory.Cache[[]domain.VenueMarket],
	j journal.Journal,
	n *notify.Notifier,
	pollInterval time.Duration,
	logger *slog.Logger,
) *Scanner {
	return &Scanner{
		matcher:      m,
		engine:       e,
		executor:     x,
		venueA:       venueA,
		venueB:       venueB,
		markets:      markets,
		journal:      j,
		notifier:     n,
		pollInterval: pollInterval,
		logger:       logger.With(slog.String("component", "scanner")),
	}
}

// Run scans immediately, then on every tick until the context is cancelled.
// A cycle always completes (or times out internally) before the next begins;
// overlapping cycles are not supported. Final stats are logged on return.
func (s *Scanner) Run(ctx context.Context) error {
	s.logger.Info("scanner started",
		slog.Duration("poll_interval", s.pollInterval),
	)
	defer s.logStats()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		s.Scan(ctx)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Scan performs one full match-evaluate-execute cycle. All failures inside a
// cycle degrade to "nothing this cycle"; Scan never returns an error.
func (s *Scanner) Scan(ctx context.Context) {
	scanNum := s.scans.Add(1)
	s.logger.Debug("scan starting", slog.Int64("scan", scanNum))

	matches := s.matcher.FindMatches(ctx)
	if len(matches) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		for _, match := range matches {
			match := match
			g.Go(func() error {
				s.processMatch(gctx, match)
				return nil
			})
		}
		_ = g.Wait()
	}

	if cleaned := s.markets.CleanupExpired(); cleaned > 0 {
		s.logger.Debug("cache swept", slog.Int("removed", cleaned))
	}
}

// processMatch fetches both venues' quotes for one matched pair, evaluates
// them, and executes any opportunity found.
func (s *Scanner) processMatch(ctx context.Context, match domain.MatchedMarket) {
	quoteA, quoteB, ok := s.fetchQuotes(ctx, match)
	if !ok {
		return
	}

	opp, found := s.engine.FindArbitrage(quoteA, quoteB)
	if !found {
		return
	}
	s.opportunities.Add(1)

	betSize := s.engine.CalculateBetSize(opp)
	estProfit := s.engine.EstimateProfit(opp, betSize)
	if estProfit.IsNegative() {
		// Rounding drift only; report as zero profit, not a fault.
		estProfit = decimal.Zero
	}

	s.logger.Info("opportunity detected",
		slog.String("slot", match.TimeSlot),
		slog.String("strike_a", match.StrikeA.String()),
		slog.String("strike_b", match.StrikeB.String()),
		slog.String("scenario", string(opp.Scenario)),
		slog.String("total_cost", opp.TotalCost.String()),
		slog.String("profit_pct", opp.ProfitPct.StringFixed(2)),
		slog.String("bet_size", betSize.String()),
		slog.String("est_profit", estProfit.String()),
	)
	s.notifier.Notify(ctx, notify.EventArbDetected,
		"Arbitrage detected",
		fmt.Sprintf("%s @ %s UTC: total %s, profit %s%%, bet %s/leg",
			opp.Scenario, match.TimeSlot, opp.TotalCost, opp.ProfitPct.StringFixed(2), betSize),
	)

	result := s.executor.ExecuteArbitrage(ctx, opp, betSize, match)
	s.executed.Add(1)

	switch {
	case result.Success:
		s.succeeded.Add(1)
	case result.PartialFill():
		s.failed.Add(1)
		s.notifier.Notify(ctx, notify.EventPartialFill,
			"PARTIAL FILL - manual reconciliation required",
			fmt.Sprintf("%s @ %s UTC: leg A filled=%v, leg B filled=%v, bet %s",
				opp.Scenario, match.TimeSlot, result.LegA != nil, result.LegB != nil, betSize),
		)
	default:
		s.failed.Add(1)
		s.notifier.Notify(ctx, notify.EventExecutionFailed,
			"Execution failed",
			fmt.Sprintf("%s @ %s UTC: %s", opp.Scenario, match.TimeSlot, result.Err),
		)
	}

	if err := s.journal.Record(ctx, match, opp, result); err != nil {
		s.logger.Warn("journal record failed", slog.String("error", err.Error()))
	}
}

// fetchQuotes retrieves both venues' snapshots concurrently. Any transport
// failure or empty snapshot skips the pair for this cycle.
func (s *Scanner) fetchQuotes(ctx context.Context, match domain.MatchedMarket) (quoteA, quoteB domain.Quote, ok bool) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quoteA, err = s.venueA.GetQuote(gctx, match.VenueA.ID)
		return err
	})
	g.Go(func() error {
		var err error
		quoteB, err = s.venueB.GetQuote(gctx, match.VenueB.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Debug("quote fetch failed, skipping pair",
			slog.String("slot", match.TimeSlot),
			slog.String("error", err.Error()),
		)
		return domain.Quote{}, domain.Quote{}, false
	}
	if quoteA.Empty() || quoteB.Empty() {
		s.logger.Debug("missing prices, skipping pair",
			slog.String("slot", match.TimeSlot),
		)
		return domain.Quote{}, domain.Quote{}, false
	}
	return quoteA, quoteB, true
}

// logStats reports the lifetime counters, typically on shutdown.
func (s *Scanner) logStats() {
	s.logger.Info("scanner statistics",
		slog.Int64("scans", s.scans.Load()),
		slog.Int64("opportunities", s.opportunities.Load()),
		slog.Int64("trades_executed", s.executed.Load()),
		slog.Int64("trades_succeeded", s.succeeded.Load()),
		slog.Int64("trades_failed", s.failed.Load()),
	)
}
