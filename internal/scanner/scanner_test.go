package scanner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/arbbot/internal/cache/memory"
	"github.com/alanyoungcy/arbbot/internal/domain"
	"github.com/alanyoungcy/arbbot/internal/engine"
	"github.com/alanyoungcy/arbbot/internal/executor"
	"github.com/alanyoungcy/arbbot/internal/matcher"
	"github.com/alanyoungcy/arbbot/internal/notify"
)

// scriptedVenue serves one market with a fixed quote and accepts every order.
type scriptedVenue struct {
	mu       sync.Mutex
	name     string
	markets  []domain.VenueMarket
	quote    domain.Quote
	quoteErr error
	orders   int
}

func (v *scriptedVenue) Name() string { return v.name }

func (v *scriptedVenue) ListActiveMarkets(context.Context) ([]domain.VenueMarket, error) {
	return v.markets, nil
}

func (v *scriptedVenue) GetQuote(_ context.Context, marketID string) (domain.Quote, error) {
	if v.quoteErr != nil {
		return domain.Quote{}, v.quoteErr
	}
	q := v.quote
	q.MarketID = marketID
	return q, nil
}

func (v *scriptedVenue) PlaceOrder(context.Context, domain.OrderRequest) (domain.OrderConfirmation, error) {
	v.mu.Lock()
	v.orders++
	v.mu.Unlock()
	return domain.OrderConfirmation{
		OrderID:  "ord-1",
		Venue:    v.name,
		Status:   "live",
		PlacedAt: time.Now().UTC(),
	}, nil
}

func (v *scriptedVenue) orderCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.orders
}

// recordingJournal captures every Record call.
type recordingJournal struct {
	mu      sync.Mutex
	records []domain.ExecutionResult
}

func (j *recordingJournal) Record(_ context.Context, _ domain.MatchedMarket, _ domain.Opportunity, result domain.ExecutionResult) error {
	j.mu.Lock()
	j.records = append(j.records, result)
	j.mu.Unlock()
	return nil
}

func (j *recordingJournal) Close() error { return nil }

func newTestScanner(a, b *scriptedVenue, j *recordingJournal) *Scanner {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	markets := memory.New[[]domain.VenueMarket](time.Minute)

	m := matcher.New(a, b, decimal.NewFromInt(200), markets, logger)
	e := engine.New(
		decimal.NewFromFloat(3.0),
		decimal.NewFromFloat(10.0),
		decimal.NewFromFloat(0.5),
		logger,
	)
	x := executor.New(a, b, time.Second, logger)
	n := notify.New(nil, nil, logger)

	return New(m, e, x, a, b, markets, j, n, time.Minute, logger)
}

func arbVenues() (*scriptedVenue, *scriptedVenue) {
	a := &scriptedVenue{
		name: "a",
		markets: []domain.VenueMarket{
			{ID: "mkt-a", Title: "Bitcoin above $97,500 at 15:00 UTC?", Active: true},
		},
		quote: domain.Quote{YesAsk: decimal.NewFromFloat(0.40)},
	}
	b := &scriptedVenue{
		name: "b",
		markets: []domain.VenueMarket{
			{ID: "mkt-b", Title: "BTC above $97,500 at 15:00 UTC", Active: true,
				OutcomeTokens: []string{"tok-no", "tok-yes"}},
		},
		quote: domain.Quote{NoAsk: decimal.NewFromFloat(0.45)},
	}
	return a, b
}

func TestScanExecutesOpportunity(t *testing.T) {
	a, b := arbVenues()
	j := &recordingJournal{}
	s := newTestScanner(a, b, j)

	s.Scan(context.Background())

	assert.Equal(t, 1, a.orderCount())
	assert.Equal(t, 1, b.orderCount())
	assert.Equal(t, int64(1), s.opportunities.Load())
	assert.Equal(t, int64(1), s.succeeded.Load())
	assert.Equal(t, int64(0), s.failed.Load())

	require.Len(t, j.records, 1)
	assert.True(t, j.records[0].Success)
}

func TestScanNoOpportunityPlacesNoOrders(t *testing.T) {
	a, b := arbVenues()
	// Prices sum to 1.05; no arbitrage exists.
	b.quote = domain.Quote{NoAsk: decimal.NewFromFloat(0.65)}
	j := &recordingJournal{}
	s := newTestScanner(a, b, j)

	s.Scan(context.Background())

	assert.Equal(t, 0, a.orderCount())
	assert.Equal(t, 0, b.orderCount())
	assert.Equal(t, int64(0), s.opportunities.Load())
	assert.Empty(t, j.records)
}

func TestScanSkipsPairOnQuoteFailure(t *testing.T) {
	a, b := arbVenues()
	b.quoteErr = errors.New("book unavailable")
	j := &recordingJournal{}
	s := newTestScanner(a, b, j)

	s.Scan(context.Background())

	assert.Equal(t, 0, a.orderCount())
	assert.Equal(t, int64(0), s.opportunities.Load())
}

func TestRunStopsOnCancel(t *testing.T) {
	a, b := arbVenues()
	j := &recordingJournal{}
	s := newTestScanner(a, b, j)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	// The immediate first scan runs before the ticker wait.
	require.Eventually(t, func() bool {
		return s.scans.Load() >= 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
