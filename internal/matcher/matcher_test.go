package matcher

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/arbbot/internal/cache/memory"
	"github.com/alanyoungcy/arbbot/internal/domain"
)

// fakeVenue is a canned VenueClient for matcher tests; only listing is used.
type fakeVenue struct {
	name    string
	markets []domain.VenueMarket
	listErr error
	calls   int
}

func (f *fakeVenue) Name() string { return f.name }

func (f *fakeVenue) ListActiveMarkets(context.Context) ([]domain.VenueMarket, error) {
	f.calls++
	return f.markets, f.listErr
}

func (f *fakeVenue) GetQuote(context.Context, string) (domain.Quote, error) {
	return domain.Quote{}, errors.New("not implemented")
}

func (f *fakeVenue) PlaceOrder(context.Context, domain.OrderRequest) (domain.OrderConfirmation, error) {
	return domain.OrderConfirmation{}, errors.New("not implemented")
}

func newTestMatcher(a, b *fakeVenue, maxStrikeDiff float64) *Matcher {
	return New(
		a, b,
		decimal.NewFromFloat(maxStrikeDiff),
		memory.New[[]domain.VenueMarket](time.Minute),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func market(id, title string) domain.VenueMarket {
	return domain.VenueMarket{ID: id, Title: title, Active: true}
}

func TestFindMatchesPairsSameSlot(t *testing.T) {
	a := &fakeVenue{name: "a", markets: []domain.VenueMarket{
		market("a1", "Bitcoin above $97,500 at 15:00 UTC?"),
	}}
	b := &fakeVenue{name: "b", markets: []domain.VenueMarket{
		market("b1", "BTC above $97,600 at 15:00 UTC"),
	}}

	m := newTestMatcher(a, b, 200)
	matches := m.FindMatches(context.Background())
	require.Len(t, matches, 1)

	got := matches[0]
	assert.Equal(t, "a1", got.VenueA.ID)
	assert.Equal(t, "b1", got.VenueB.ID)
	assert.Equal(t, "15:00", got.TimeSlot)
	assert.True(t, got.StrikeDiff.Equal(decimal.NewFromInt(100)))
}

func TestFindMatchesStrikeThresholdInclusive(t *testing.T) {
	a := &fakeVenue{name: "a", markets: []domain.VenueMarket{
		market("a1", "Bitcoin above $97,500 at 15:00 UTC?"),
	}}
	b := &fakeVenue{name: "b", markets: []domain.VenueMarket{
		market("b-at", "BTC above $97,700 at 15:00 UTC"),
		market("b-over", "BTC above $97,701 at 15:00 UTC"),
	}}

	m := newTestMatcher(a, b, 200)
	matches := m.FindMatches(context.Background())
	require.Len(t, matches, 1, "diff exactly at the limit matches, one past it does not")
	assert.Equal(t, "b-at", matches[0].VenueB.ID)
}

func TestFindMatchesDifferentSlots(t *testing.T) {
	a := &fakeVenue{name: "a", markets: []domain.VenueMarket{
		market("a1", "Bitcoin above $97,500 at 15:00 UTC?"),
	}}
	b := &fakeVenue{name: "b", markets: []domain.VenueMarket{
		market("b1", "BTC above $97,500 at 16:00 UTC"),
	}}

	m := newTestMatcher(a, b, 200)
	assert.Empty(t, m.FindMatches(context.Background()))
}

func TestFindMatchesDropsUnparsableTitles(t *testing.T) {
	a := &fakeVenue{name: "a", markets: []domain.VenueMarket{
		market("a1", "Bitcoin above $97,500 at 15:00 UTC?"),
		market("a2", "Who wins the election?"),
	}}
	b := &fakeVenue{name: "b", markets: []domain.VenueMarket{
		market("b1", "BTC above $97,500 at 15:00 UTC"),
	}}

	m := newTestMatcher(a, b, 200)
	matches := m.FindMatches(context.Background())
	require.Len(t, matches, 1)
	assert.Equal(t, "a1", matches[0].VenueA.ID)
}

func TestFindMatchesFetchFailureYieldsEmpty(t *testing.T) {
	a := &fakeVenue{name: "a", markets: []domain.VenueMarket{
		market("a1", "Bitcoin above $97,500 at 15:00 UTC?"),
	}}
	b := &fakeVenue{name: "b", listErr: errors.New("503 service unavailable")}

	m := newTestMatcher(a, b, 200)
	assert.Empty(t, m.FindMatches(context.Background()), "one failed venue fetch skips the whole cycle")
}

func TestFindMatchesCachesVenueFetches(t *testing.T) {
	a := &fakeVenue{name: "a", markets: []domain.VenueMarket{
		market("a1", "Bitcoin above $97,500 at 15:00 UTC?"),
	}}
	b := &fakeVenue{name: "b", markets: []domain.VenueMarket{
		market("b1", "BTC above $97,500 at 15:00 UTC"),
	}}

	m := newTestMatcher(a, b, 200)
	m.FindMatches(context.Background())
	m.FindMatches(context.Background())

	assert.Equal(t, 1, a.calls, "second pass inside the TTL must reuse the cached list")
	assert.Equal(t, 1, b.calls)
}
