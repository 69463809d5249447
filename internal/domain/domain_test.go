package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOutcomeComplement(t *testing.T) {
	assert.Equal(t, OutcomeNo, OutcomeYes.Complement())
	assert.Equal(t, OutcomeYes, OutcomeNo.Complement())
}

func TestOutcomeToken(t *testing.T) {
	m := VenueMarket{OutcomeTokens: []string{"tok-no", "tok-yes"}}

	tok, ok := m.OutcomeToken(OutcomeYes)
	assert.True(t, ok)
	assert.Equal(t, "tok-yes", tok)

	tok, ok = m.OutcomeToken(OutcomeNo)
	assert.True(t, ok)
	assert.Equal(t, "tok-no", tok)

	short := VenueMarket{OutcomeTokens: []string{"only-one"}}
	_, ok = short.OutcomeToken(OutcomeYes)
	assert.False(t, ok)

	_, ok = VenueMarket{}.OutcomeToken(OutcomeNo)
	assert.False(t, ok)
}

func TestQuoteEmpty(t *testing.T) {
	assert.True(t, Quote{MarketID: "m"}.Empty())
	assert.False(t, Quote{YesAsk: decimal.NewFromFloat(0.4)}.Empty())
	assert.False(t, Quote{NoBid: decimal.NewFromFloat(0.1)}.Empty())
}

func TestExecutionResultPartialFill(t *testing.T) {
	conf := &OrderConfirmation{OrderID: "o1"}

	assert.False(t, ExecutionResult{}.PartialFill())
	assert.True(t, ExecutionResult{LegA: conf}.PartialFill())
	assert.True(t, ExecutionResult{LegB: conf}.PartialFill())
	assert.False(t, ExecutionResult{LegA: conf, LegB: conf}.PartialFill())

	assert.True(t, ExecutionResult{LegA: conf, LegB: conf}.BothFilled())
	assert.False(t, ExecutionResult{LegA: conf}.BothFilled())
}
