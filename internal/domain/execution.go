package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRequest is the venue-agnostic order a client submits. TokenID is used
// by venues that address orders per outcome token; venues addressed per market
// use MarketID plus Outcome.
type OrderRequest struct {
	MarketID string
	TokenID  string
	Outcome  Outcome
	Side     OrderSide
	Amount   decimal.Decimal
	Price    decimal.Decimal
}

// OrderSide indicates whether an order buys or sells an outcome.
type OrderSide string

const (
	OrderSideBuy  OrderSide = "buy"
	OrderSideSell OrderSide = "sell"
)

// OrderConfirmation is a venue's acknowledgement of an accepted order.
type OrderConfirmation struct {
	OrderID  string
	Venue    string
	Status   string
	PlacedAt time.Time
}

// ExecutionResult is the immutable outcome of one dual-leg execution attempt.
// Absent leg confirmations are nil; the caller is responsible for out-of-band
// reconciliation when exactly one leg filled, since unwinding a filled
// prediction-market position is not an operation the venues offer.
type ExecutionResult struct {
	Success bool
	LegA    *OrderConfirmation
	LegB    *OrderConfirmation
	Err     string
	BetSize decimal.Decimal
}

// BothFilled reports whether both leg confirmations are present.
func (r ExecutionResult) BothFilled() bool {
	return r.LegA != nil && r.LegB != nil
}

// PartialFill reports whether exactly one leg confirmed. This is the outcome
// that leaves real unhedged exposure and must be reconciled manually.
func (r ExecutionResult) PartialFill() bool {
	return (r.LegA != nil) != (r.LegB != nil)
}
