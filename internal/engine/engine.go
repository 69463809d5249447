// Package engine detects arbitrage between a pair of cross-venue quotes and
// sizes the resulting orders. Detection is a pure function of the two quotes;
// the only side effect is a log line when an opportunity is found.
package engine

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/alanyoungcy/arbbot/internal/domain"
)

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Engine evaluates the two complementary-outcome scenarios between venue A
// and venue B quotes.
type Engine struct {
	minSpreadPct decimal.Decimal
	maxBet       decimal.Decimal
	slippagePct  decimal.Decimal
	logger       *slog.Logger
}

// New creates an Engine. minSpreadPct gates how far the venue-A price must
// diverge from venue B's complementary implied probability; maxBet is the
// maximum combined stake across both legs; slippagePct shrinks the stake to
// leave room for price movement between quote and fill.
func New(minSpreadPct, maxBet, slippagePct decimal.Decimal, logger *slog.Logger) *Engine {
	return &Engine{
		minSpreadPct: minSpreadPct,
		maxBet:       maxBet,
		slippagePct:  slippagePct,
		logger:       logger.With(slog.String("component", "engine")),
	}
}

// FindArbitrage evaluates both scenarios against the given quotes and returns
// the more profitable qualifying opportunity, if any. On an exact profit tie
// the yes-A/no-B scenario wins; the tie-break is arbitrary but deterministic.
func (e *Engine) FindArbitrage(quoteA, quoteB domain.Quote) (domain.Opportunity, bool) {
	best, found := e.evaluateScenario(
		quoteA.YesAsk, quoteB.NoAsk,
		domain.ScenarioYesANoB, domain.OutcomeYes, domain.OutcomeNo,
	)

	if opp, ok := e.evaluateScenario(
		quoteA.NoAsk, quoteB.YesAsk,
		domain.ScenarioNoAYesB, domain.OutcomeNo, domain.OutcomeYes,
	); ok && (!found || opp.ProfitPct.GreaterThan(best.ProfitPct)) {
		best, found = opp, true
	}

	if !found {
		return domain.Opportunity{}, false
	}

	e.logger.Info("arbitrage found",
		slog.String("scenario", string(best.Scenario)),
		slog.String("total_cost", best.TotalCost.String()),
		slog.String("spread_pct", best.SpreadPct.StringFixed(2)),
		slog.String("profit_pct", best.ProfitPct.StringFixed(2)),
	)
	return best, true
}

// evaluateScenario checks one venue/outcome combination: both ask prices must
// be present and positive, the combined cost must be strictly below the $1
// payout, and the spread between the venue-A price and venue B's complementary
// implied probability must meet the configured minimum.
func (e *Engine) evaluateScenario(priceA, priceB decimal.Decimal, scenario domain.Scenario, outcomeA, outcomeB domain.Outcome) (domain.Opportunity, bool) {
	if !priceA.IsPositive() || !priceB.IsPositive() {
		return domain.Opportunity{}, false
	}

	total := priceA.Add(priceB)
	if total.GreaterThanOrEqual(one) {
		return domain.Opportunity{}, false
	}

	impliedB := one.Sub(priceB)
	spread := CalculateSpread(priceA, impliedB)
	if spread.LessThan(e.minSpreadPct) {
		return domain.Opportunity{}, false
	}

	profit := one.Sub(total).Div(total).Mul(hundred)

	return domain.Opportunity{
		Scenario:  scenario,
		OutcomeA:  outcomeA,
		PriceA:    priceA,
		OutcomeB:  outcomeB,
		PriceB:    priceB,
		TotalCost: total,
		SpreadPct: spread,
		ProfitPct: profit,
	}, true
}

// CalculateSpread returns the percentage spread between two prices relative
// to their mean: |x-y| / mean(x,y) * 100. Non-positive inputs or a zero mean
// yield zero rather than a division error, which then fails the minimum
// spread gate.
func CalculateSpread(x, y decimal.Decimal) decimal.Decimal {
	if !x.IsPositive() || !y.IsPositive() {
		return decimal.Zero
	}
	mean := x.Add(y).Div(two)
	if mean.IsZero() {
		return decimal.Zero
	}
	return x.Sub(y).Abs().Div(mean).Mul(hundred)
}

// CalculateBetSize returns the stake for one leg: the configured maximum
// total stake reduced by the slippage tolerance, halved across the two legs,
// and rounded to the cent. Rounding is half away from zero (round-half-up for
// the positive amounts used here), so the result is deterministic and never
// increases when the slippage tolerance grows.
func (e *Engine) CalculateBetSize(domain.Opportunity) decimal.Decimal {
	adjusted := e.maxBet.Mul(one.Sub(e.slippagePct.Div(hundred)))
	return adjusted.Div(two).Round(2)
}

// EstimateProfit returns the expected profit for the whole trade at the given
// per-leg stake: betSize*2/totalCost - betSize*2, rounded to the cent. A
// slightly negative value can only arise from rounding drift; callers report
// it as zero profit rather than a fault.
func (e *Engine) EstimateProfit(opp domain.Opportunity, betSize decimal.Decimal) decimal.Decimal {
	invested := betSize.Mul(two)
	payout := invested.Div(opp.TotalCost)
	return payout.Sub(invested).Round(2)
}
