package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenInvalidationCache_InvalidateAndQuery(t *testing.T) {
	cache := NewTokenInvalidationCache()
	defer cache.Close()

	result := cache.Invalidate("42", "logout")
	require.True(t, result.Success)

	assert.True(t, cache.IsInvalidated("42"))
	assert.False(t, cache.IsInvalidated("7"), "user never invalidated must report false")
}

func TestTokenInvalidationCache_EmptyUserID(t *testing.T) {
	cache := NewTokenInvalidationCache()
	defer cache.Close()

	result := cache.Invalidate("", "logout")
	assert.False(t, result.Success)
	assert.Equal(t, 0, cache.Len())
}

func TestTokenInvalidationCache_LastWriteWins(t *testing.T) {
	cache := NewTokenInvalidationCache()
	defer cache.Close()

	cache.Invalidate("42", "logout")
	first := cache.records["42"]
	cache.Invalidate("42", "password-change")

	assert.Equal(t, 1, cache.Len(), "repeated invalidation must overwrite, not accumulate")
	assert.True(t, cache.IsInvalidated("42"))

	second := cache.records["42"]
	assert.Equal(t, "password-change", second.Reason)
	assert.False(t, second.InvalidatedAt.Before(first.InvalidatedAt))
}

func TestTokenInvalidationCache_SweepRemovesOnlyExpired(t *testing.T) {
	cache := NewTokenInvalidationCache()
	defer cache.Close()

	cache.Invalidate("old", "logout")
	cache.Invalidate("fresh", "logout")

	// 23h later: nothing crosses the 24h boundary.
	cache.sweepExpired(time.Now().Add(23 * time.Hour))
	assert.True(t, cache.IsInvalidated("old"))
	assert.True(t, cache.IsInvalidated("fresh"))

	// 25h later: both records are past the cleanup interval.
	cache.sweepExpired(time.Now().Add(25 * time.Hour))
	assert.False(t, cache.IsInvalidated("old"))
	assert.False(t, cache.IsInvalidated("fresh"))
	assert.Equal(t, 0, cache.Len())
}

func TestTokenInvalidationCache_AgeIgnoredUntilSweep(t *testing.T) {
	cache := NewTokenInvalidationCache()
	defer cache.Close()

	cache.Invalidate("42", "logout")

	// The query path never considers record age. Only the sweep evicts.
	cache.mu.Lock()
	record := cache.records["42"]
	record.InvalidatedAt = time.Now().Add(-48 * time.Hour)
	cache.records["42"] = record
	cache.mu.Unlock()

	assert.True(t, cache.IsInvalidated("42"), "stale record must still count as invalidated before a sweep runs")

	cache.sweepExpired(time.Now())
	assert.False(t, cache.IsInvalidated("42"))
}

func TestTokenInvalidationCache_CloseIsIdempotent(t *testing.T) {
	cache := NewTokenInvalidationCache()
	cache.Close()
	cache.Close()
}
