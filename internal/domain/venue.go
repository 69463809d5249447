package domain

import "context"

// VenueClient is the capability surface the core needs from a trading venue.
// The matcher, engine, and executor depend only on this interface; the
// concrete REST clients live under internal/platform.
//
// GetQuote returns an empty Quote (never an error) when the venue has no
// resting orders; errors are reserved for transport failures.
type VenueClient interface {
	// Name returns the venue identifier used in logs and journal entries.
	Name() string
	// ListActiveMarkets returns the venue's currently active hourly markets.
	ListActiveMarkets(ctx context.Context) ([]VenueMarket, error)
	// GetQuote returns the best ask/bid per outcome for one market.
	GetQuote(ctx context.Context, marketID string) (Quote, error)
	// PlaceOrder submits an order and returns the venue's confirmation.
	PlaceOrder(ctx context.Context, req OrderRequest) (OrderConfirmation, error)
}
