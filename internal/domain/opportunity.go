package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scenario identifies which venue/outcome combination an opportunity trades.
type Scenario string

const (
	// ScenarioYesANoB buys yes on venue A and no on venue B.
	ScenarioYesANoB Scenario = "yes_a_no_b"
	// ScenarioNoAYesB buys no on venue A and yes on venue B.
	ScenarioNoAYesB Scenario = "no_a_yes_b"
)

// Opportunity is an immutable description of a detected arbitrage: both legs'
// ask prices, their sum, and the derived spread and profit percentages. It is
// produced by the engine and discarded at the end of the cycle unless
// executed.
//
// Invariant: TotalCost < 1.0, so the guaranteed $1 payout on whichever leg
// wins strictly exceeds the combined cost.
type Opportunity struct {
	Scenario  Scenario
	OutcomeA  Outcome
	PriceA    decimal.Decimal
	OutcomeB  Outcome
	PriceB    decimal.Decimal
	TotalCost decimal.Decimal
	SpreadPct decimal.Decimal
	ProfitPct decimal.Decimal
}

// String renders the opportunity for log output.
func (o Opportunity) String() string {
	return fmt.Sprintf("%s | total=%s spread=%s%% profit=%s%%",
		o.Scenario, o.TotalCost, o.SpreadPct.StringFixed(2), o.ProfitPct.StringFixed(2))
}
