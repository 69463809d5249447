package journal

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alanyoungcy/arbbot/internal/domain"
)

// executionStream is the Redis stream executions are appended to.
const executionStream = "arb:executions"

// defaultStreamMaxLen is the approximate maximum stream length, enforced via
// XADD MAXLEN ~.
const defaultStreamMaxLen int64 = 10000

// RedisConfig holds connection parameters for the Redis-backed journal.
type RedisConfig struct {
	Addr       string
	Password   string
	DB         int
	PoolSize   int
	MaxRetries int
	MaxLen     int64
}

// RedisJournal appends execution records to a Redis stream. Entries are
// flat field/value pairs so they can be consumed with XREAD from any tooling.
type RedisJournal struct {
	rdb    *redis.Client
	maxLen int64
}

// NewRedis creates a RedisJournal and pings the server to verify
// connectivity.
func NewRedis(ctx context.Context, cfg RedisConfig) (*RedisJournal, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:       cfg.Addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		PoolSize:   cfg.PoolSize,
		MaxRetries: cfg.MaxRetries,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("journal: redis ping: %w", err)
	}

	maxLen := cfg.MaxLen
	if maxLen <= 0 {
		maxLen = defaultStreamMaxLen
	}
	return &RedisJournal{rdb: rdb, maxLen: maxLen}, nil
}

// Record appends one execution attempt to the stream.
func (j *RedisJournal) Record(ctx context.Context, match domain.MatchedMarket, opp domain.Opportunity, result domain.ExecutionResult) error {
	values := map[string]any{
		"ts":          strconv.FormatInt(time.Now().UTC().UnixNano(), 10),
		"slot":        match.TimeSlot,
		"market_a":    match.VenueA.ID,
		"market_b":    match.VenueB.ID,
		"scenario":    string(opp.Scenario),
		"total_cost":  opp.TotalCost.String(),
		"profit_pct":  opp.ProfitPct.StringFixed(2),
		"bet_size":    result.BetSize.String(),
		"success":     strconv.FormatBool(result.Success),
		"both_filled": strconv.FormatBool(result.BothFilled()),
		"error":       result.Err,
	}
	if result.LegA != nil {
		values["order_a"] = result.LegA.OrderID
	}
	if result.LegB != nil {
		values["order_b"] = result.LegB.OrderID
	}

	err := j.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: executionStream,
		MaxLen: j.maxLen,
		Approx: true,
		Values: values,
	}).Err()
	if err != nil {
		return fmt.Errorf("journal: xadd %s: %w", executionStream, err)
	}
	return nil
}

// Close closes the Redis connection.
func (j *RedisJournal) Close() error {
	return j.rdb.Close()
}

// Compile-time interface check.
var _ Journal = (*RedisJournal)(nil)
