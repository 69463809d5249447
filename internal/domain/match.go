package domain

import "github.com/shopspring/decimal"

// MatchedMarket pairs one venue-A market with one venue-B market that settle
// in the same UTC time slot at nearby strikes. Matches are rebuilt from the
// then-current active-market lists every scan cycle and are never persisted;
// identity is the two underlying market IDs.
//
// Invariant: StrikeDiff = |StrikeA - StrikeB| <= the matcher's configured
// maximum (inclusive).
type MatchedMarket struct {
	VenueA     VenueMarket
	VenueB     VenueMarket
	StrikeA    decimal.Decimal
	StrikeB    decimal.Decimal
	StrikeDiff decimal.Decimal
	TimeSlot   string // "HH:MM" UTC settlement time
}
