// Package matcher pairs markets across two venues that refer to the same
// real-world event: same UTC settlement slot, strike prices within a
// configured distance of each other.
package matcher

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/alanyoungcy/arbbot/internal/cache/memory"
	"github.com/alanyoungcy/arbbot/internal/domain"
)

// Matcher fetches both venues' active hourly markets and emits every pair
// whose titles parse to the same time slot with strikes within maxStrikeDiff.
type Matcher struct {
	venueA        domain.VenueClient
	venueB        domain.VenueClient
	maxStrikeDiff decimal.Decimal
	markets       *memory.Cache[[]domain.VenueMarket]
	parser        *titleParser
	logger        *slog.Logger
}

// New creates a Matcher. markets memoizes each venue's active-market list so
// repeated scans inside the cache TTL reuse the last fetch.
func New(venueA, venueB domain.VenueClient, maxStrikeDiff decimal.Decimal, markets *memory.Cache[[]domain.VenueMarket], logger *slog.Logger) *Matcher {
	return &Matcher{
		venueA:        venueA,
		venueB:        venueB,
		maxStrikeDiff: maxStrikeDiff,
		markets:       markets,
		parser:        newTitleParser(),
		logger:        logger.With(slog.String("component", "matcher")),
	}
}

// slotEntry is one parsed market within a time slot.
type slotEntry struct {
	strike decimal.Decimal
	market domain.VenueMarket
}

// FindMatches fetches both venues concurrently and returns all matched pairs.
// If either fetch fails the whole attempt yields an empty result for this
// cycle: the failure is logged, never propagated, and no partial matching is
// attempted. Sequence order follows venue-A slot iteration order and is not
// stable across runs.
func (m *Matcher) FindMatches(ctx context.Context) []domain.MatchedMarket {
	var marketsA, marketsB []domain.VenueMarket

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		marketsA, err = m.listMarkets(gctx, m.venueA)
		return err
	})
	g.Go(func() error {
		var err error
		marketsB, err = m.listMarkets(gctx, m.venueB)
		return err
	})
	if err := g.Wait(); err != nil {
		m.logger.Error("market fetch failed, skipping cycle",
			slog.String("error", err.Error()),
		)
		return nil
	}

	m.logger.Debug("fetched active markets",
		slog.String("venue_a", m.venueA.Name()),
		slog.Int("count_a", len(marketsA)),
		slog.String("venue_b", m.venueB.Name()),
		slog.Int("count_b", len(marketsB)),
	)

	slotsA := m.buildSlotMap(marketsA)
	slotsB := m.buildSlotMap(marketsB)

	var matches []domain.MatchedMarket
	for slot, entriesA := range slotsA {
		entriesB, ok := slotsB[slot]
		if !ok {
			continue
		}
		// Cross product per slot; single digits of markets in practice.
		for _, a := range entriesA {
			for _, b := range entriesB {
				diff := a.strike.Sub(b.strike).Abs()
				if diff.GreaterThan(m.maxStrikeDiff) {
					continue
				}
				matches = append(matches, domain.MatchedMarket{
					VenueA:     a.market,
					VenueB:     b.market,
					StrikeA:    a.strike,
					StrikeB:    b.strike,
					StrikeDiff: diff,
					TimeSlot:   slot,
				})
				m.logger.Debug("markets matched",
					slog.String("slot", slot),
					slog.String("strike_a", a.strike.String()),
					slog.String("strike_b", b.strike.String()),
					slog.String("diff", diff.String()),
				)
			}
		}
	}

	m.logger.Info("match pass complete", slog.Int("matches", len(matches)))
	return matches
}

// listMarkets returns the venue's active markets through the memoizing cache.
func (m *Matcher) listMarkets(ctx context.Context, venue domain.VenueClient) ([]domain.VenueMarket, error) {
	return m.markets.GetOrFetch(ctx, "markets:"+venue.Name(), venue.ListActiveMarkets)
}

// buildSlotMap parses every market's title and groups the parsable ones by
// settlement slot. Markets whose titles yield no strike or slot are silently
// dropped; they simply cannot match.
func (m *Matcher) buildSlotMap(markets []domain.VenueMarket) map[string][]slotEntry {
	slots := make(map[string][]slotEntry)
	for _, mkt := range markets {
		parsed, ok := m.parser.parse(mkt.Title)
		if !ok {
			continue
		}
		slots[parsed.slot] = append(slots[parsed.slot], slotEntry{strike: parsed.strike, market: mkt})
	}
	return slots
}
