// Package executor places both legs of an arbitrage concurrently and reports
// the combined outcome. There is no cross-venue transaction: a leg that fails
// or times out leaves the other leg's fill standing, and no automatic unwind
// is attempted because prediction-market positions generally cannot be
// unwound. Partial fills are surfaced to the caller for manual reconciliation.
package executor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alanyoungcy/arbbot/internal/domain"
)

// Executor submits the two legs of an opportunity to their venues.
type Executor struct {
	venueA  domain.VenueClient
	venueB  domain.VenueClient
	timeout time.Duration
	logger  *slog.Logger
}

// New creates an Executor. timeout bounds the wait for both legs as a whole;
// it does not guarantee the underlying venue requests are aborted, only that
// the executor stops waiting for them.
func New(venueA, venueB domain.VenueClient, timeout time.Duration, logger *slog.Logger) *Executor {
	return &Executor{
		venueA:  venueA,
		venueB:  venueB,
		timeout: timeout,
		logger:  logger.With(slog.String("component", "executor")),
	}
}

// ExecuteArbitrage resolves the venue-B outcome token, submits both legs
// concurrently, and waits for both to complete under the execution timeout.
//
// Success requires both confirmations. On any other outcome the result is a
// failure, but whichever confirmations did land are still returned so the
// caller can see exactly what filled. On timeout both legs are reported
// unfilled even though one or both submissions may have reached the venue;
// the true venue state must be reconciled out-of-band.
func (e *Executor) ExecuteArbitrage(ctx context.Context, opp domain.Opportunity, betSize decimal.Decimal, match domain.MatchedMarket) domain.ExecutionResult {
	tokenB, ok := match.VenueB.OutcomeToken(opp.OutcomeB)
	if !ok {
		e.logger.Error("malformed outcome token list, no orders placed",
			slog.String("market_b", match.VenueB.ID),
			slog.Int("tokens", len(match.VenueB.OutcomeTokens)),
		)
		return domain.ExecutionResult{
			Success: false,
			Err:     domain.ErrMalformedMarket.Error(),
			BetSize: betSize,
		}
	}

	e.logger.Info("executing arbitrage",
		slog.String("scenario", string(opp.Scenario)),
		slog.String("bet_size", betSize.String()),
		slog.String("slot", match.TimeSlot),
	)

	execCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	var (
		legA, legB *domain.OrderConfirmation
		done       = make(chan struct{})
	)
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			legA = e.placeLeg(execCtx, e.venueA, domain.OrderRequest{
				MarketID: match.VenueA.ID,
				Outcome:  opp.OutcomeA,
				Side:     domain.OrderSideBuy,
				Amount:   betSize,
				Price:    opp.PriceA,
			})
		}()
		go func() {
			defer wg.Done()
			legB = e.placeLeg(execCtx, e.venueB, domain.OrderRequest{
				MarketID: match.VenueB.ID,
				TokenID:  tokenB,
				Outcome:  opp.OutcomeB,
				Side:     domain.OrderSideBuy,
				Amount:   betSize,
				Price:    opp.PriceB,
			})
		}()
		wg.Wait()
	}()

	select {
	case <-done:
	case <-execCtx.Done():
		e.logger.Error("execution timed out, venue state unknown",
			slog.Duration("timeout", e.timeout),
		)
		return domain.ExecutionResult{
			Success: false,
			Err:     domain.ErrExecutionTimeout.Error(),
			BetSize: betSize,
		}
	}

	result := domain.ExecutionResult{
		Success: legA != nil && legB != nil,
		LegA:    legA,
		LegB:    legB,
		BetSize: betSize,
	}

	switch {
	case result.Success:
		e.logger.Info("arbitrage executed",
			slog.String("order_a", legA.OrderID),
			slog.String("order_b", legB.OrderID),
		)
	case result.PartialFill():
		result.Err = "partial execution: one leg unfilled"
		e.logger.Warn("partial execution, manual reconciliation required",
			slog.Bool("leg_a_filled", legA != nil),
			slog.Bool("leg_b_filled", legB != nil),
		)
	default:
		result.Err = "both legs rejected"
		e.logger.Warn("both legs rejected")
	}
	return result
}

// placeLeg submits a single order and normalizes any failure to an absent
// confirmation so one leg's error never prevents observing the other's
// outcome.
func (e *Executor) placeLeg(ctx context.Context, venue domain.VenueClient, req domain.OrderRequest) *domain.OrderConfirmation {
	conf, err := venue.PlaceOrder(ctx, req)
	if err != nil {
		e.logger.Error("leg submission failed",
			slog.String("venue", venue.Name()),
			slog.String("market", req.MarketID),
			slog.String("outcome", string(req.Outcome)),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return &conf
}
