package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time forward without sleeping.
type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time          { return f.now }
func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestCache(ttl time.Duration) (*Cache[string], *fakeClock) {
	c := New[string](ttl)
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	c.now = clock.Now
	return c, clock
}

func TestCacheSetGet(t *testing.T) {
	c, _ := newTestCache(8 * time.Second)

	c.Set("k", "v")
	got, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCacheExpiryEvictsOnRead(t *testing.T) {
	c, clock := newTestCache(8 * time.Second)

	c.Set("k", "v")
	clock.Advance(8 * time.Second)

	_, ok := c.Get("k")
	assert.False(t, ok, "entry at its expiry instant must be reported absent")
	assert.Equal(t, 0, c.Len(), "expired entry must be evicted by the read")
}

func TestCacheSetResetsExpiry(t *testing.T) {
	c, clock := newTestCache(8 * time.Second)

	c.Set("k", "old")
	clock.Advance(6 * time.Second)
	c.Set("k", "new")
	clock.Advance(6 * time.Second)

	got, ok := c.Get("k")
	require.True(t, ok, "overwrite must reset the expiry window")
	assert.Equal(t, "new", got)
}

func TestCacheSetTTL(t *testing.T) {
	c, clock := newTestCache(8 * time.Second)

	c.SetTTL("short", "v", time.Second)
	c.SetTTL("long", "v", time.Minute)
	clock.Advance(2 * time.Second)

	_, ok := c.Get("short")
	assert.False(t, ok)
	_, ok = c.Get("long")
	assert.True(t, ok)
}

func TestCacheGetOrFetch(t *testing.T) {
	c, clock := newTestCache(8 * time.Second)

	calls := 0
	producer := func(context.Context) (string, error) {
		calls++
		return "fetched", nil
	}

	got, err := c.GetOrFetch(context.Background(), "k", producer)
	require.NoError(t, err)
	assert.Equal(t, "fetched", got)
	assert.Equal(t, 1, calls)

	// Live entry short-circuits the producer.
	got, err = c.GetOrFetch(context.Background(), "k", producer)
	require.NoError(t, err)
	assert.Equal(t, "fetched", got)
	assert.Equal(t, 1, calls)

	// Expired entry triggers a refetch.
	clock.Advance(9 * time.Second)
	_, err = c.GetOrFetch(context.Background(), "k", producer)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCacheGetOrFetchError(t *testing.T) {
	c, _ := newTestCache(8 * time.Second)

	wantErr := errors.New("venue down")
	_, err := c.GetOrFetch(context.Background(), "k", func(context.Context) (string, error) {
		return "", wantErr
	})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0, c.Len(), "failed fetch must not be cached")
}

func TestCacheCleanupExpired(t *testing.T) {
	c, clock := newTestCache(8 * time.Second)

	c.SetTTL("a", "v", time.Second)
	c.SetTTL("b", "v", time.Second)
	c.SetTTL("c", "v", time.Minute)
	clock.Advance(5 * time.Second)

	removed := c.CleanupExpired()
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Len())

	assert.Equal(t, 0, c.CleanupExpired(), "second sweep has nothing to remove")
}

func TestCacheInvalidateAndClear(t *testing.T) {
	c, _ := newTestCache(8 * time.Second)

	c.Set("a", "v")
	c.Set("b", "v")

	c.Invalidate("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Equal(t, 0, c.Len())
}
