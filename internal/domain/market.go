package domain

// VenueMarket is a venue's own record of an active hourly market, as returned
// by VenueClient.ListActiveMarkets. Title is the display question string the
// matcher parses for strike and time slot. OutcomeTokens lists the venue's
// outcome identifiers in book order (index 0 = no, index 1 = yes); venues that
// address orders by market ID leave it empty.
type VenueMarket struct {
	ID            string
	Title         string
	Active        bool
	OutcomeTokens []string
}

// Outcome is one of the two complementary binary results a market settles to.
type Outcome string

const (
	OutcomeYes Outcome = "yes"
	OutcomeNo  Outcome = "no"
)

// Complement returns the opposite outcome.
func (o Outcome) Complement() Outcome {
	if o == OutcomeYes {
		return OutcomeNo
	}
	return OutcomeYes
}

// OutcomeToken returns the venue token identifier for the given outcome, or
// false when the market's token list is malformed (fewer than two entries).
// Book order on the CLOB venues puts no at index 0 and yes at index 1.
func (m VenueMarket) OutcomeToken(o Outcome) (string, bool) {
	if len(m.OutcomeTokens) < 2 {
		return "", false
	}
	if o == OutcomeYes {
		return m.OutcomeTokens[1], true
	}
	return m.OutcomeTokens[0], true
}
