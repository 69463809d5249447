package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is an immutable snapshot of the best resting prices for one market on
// one venue. A zero price means the book had no resting orders at that level;
// quotes are superseded by fresh snapshots, never mutated.
type Quote struct {
	MarketID  string
	YesAsk    decimal.Decimal
	YesBid    decimal.Decimal
	NoAsk     decimal.Decimal
	NoBid     decimal.Decimal
	FetchedAt time.Time
}

// Empty reports whether the snapshot carries no prices at all, which is how
// venue clients represent "no data" without raising an error.
func (q Quote) Empty() bool {
	return q.YesAsk.IsZero() && q.YesBid.IsZero() && q.NoAsk.IsZero() && q.NoBid.IsZero()
}
