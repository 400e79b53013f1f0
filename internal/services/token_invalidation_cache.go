// Package services contains the application service layer.
package services

import (
	"sync"
	"time"

	"socialnet/internal/domain"
)

// tokenCleanupInterval is both the sweep cadence and the age past which an
// invalidation record is eligible for removal.
const tokenCleanupInterval = 24 * time.Hour

// TokenInvalidationCache marks a user's currently issued credential as no
// longer valid without revoking it cryptographically.
//
// The existence check deliberately ignores record age; the periodic sweep is
// the sole expiry mechanism. Records are last-write-wins per user id.
type TokenInvalidationCache struct {
	mu      sync.RWMutex
	records map[string]domain.InvalidatedToken
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
}

// NewTokenInvalidationCache creates the cache and starts its background
// sweep. The sweep runs for the lifetime of the cache; Close stops it.
func NewTokenInvalidationCache() *TokenInvalidationCache {
	c := &TokenInvalidationCache{
		records: make(map[string]domain.InvalidatedToken),
		ticker:  time.NewTicker(tokenCleanupInterval),
		done:    make(chan struct{}),
	}
	go c.sweepLoop()
	return c
}

// Invalidate upserts an invalidation record for the user. It never fails
// toward the caller; any problem surfaces only as Success=false so that
// login/logout is never blocked by the cache.
func (c *TokenInvalidationCache) Invalidate(userID, reason string) domain.InvalidationResult {
	if userID == "" {
		return domain.InvalidationResult{Success: false}
	}

	c.mu.Lock()
	c.records[userID] = domain.InvalidatedToken{
		UserID:        userID,
		InvalidatedAt: time.Now(),
		Reason:        reason,
	}
	c.mu.Unlock()

	return domain.InvalidationResult{Success: true}
}

// IsInvalidated reports whether an invalidation record exists for the user.
// Record age is not considered here.
func (c *TokenInvalidationCache) IsInvalidated(userID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.records[userID]
	return exists
}

// Len returns the number of live invalidation records.
func (c *TokenInvalidationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Close stops the background sweep. Safe to call more than once.
func (c *TokenInvalidationCache) Close() {
	c.once.Do(func() {
		c.ticker.Stop()
		close(c.done)
	})
}

func (c *TokenInvalidationCache) sweepLoop() {
	for {
		select {
		case <-c.done:
			return
		case <-c.ticker.C:
			c.sweepExpired(time.Now())
		}
	}
}

// sweepExpired removes every record older than the cleanup interval.
func (c *TokenInvalidationCache) sweepExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for userID, record := range c.records {
		if now.Sub(record.InvalidatedAt) > tokenCleanupInterval {
			delete(c.records, userID)
		}
	}
}
