// Package journal records every dual-leg execution attempt so that
// reconciliation tooling can inspect what actually reached the venues. A
// partial fill is real unhedged exposure; the journal is how it gets noticed
// after the process moves on. This is an execution log, not a store of
// detected opportunities.
package journal

import (
	"context"

	"github.com/alanyoungcy/arbbot/internal/domain"
)

// Journal appends execution outcomes for out-of-band consumers.
type Journal interface {
	// Record appends one execution attempt. Failures to record are returned
	// to the caller for logging but must never affect trading.
	Record(ctx context.Context, match domain.MatchedMarket, opp domain.Opportunity, result domain.ExecutionResult) error
	// Close releases any underlying resources.
	Close() error
}

// Noop is the Journal used when no backend is configured.
type Noop struct{}

// Record discards the entry.
func (Noop) Record(context.Context, domain.MatchedMarket, domain.Opportunity, domain.ExecutionResult) error {
	return nil
}

// Close is a no-op.
func (Noop) Close() error { return nil }
