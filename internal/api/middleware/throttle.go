package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jellydator/ttlcache/v3"
	"github.com/redis/go-redis/v9"
)

// tokenBucket is a per-client token bucket refilled at a fixed rate.
type tokenBucket struct {
	mu         sync.Mutex
	lastRefill time.Time
	refill     time.Duration
	tokens     int
	capacity   int
}

func newTokenBucket(capacity int, refill time.Duration) *tokenBucket {
	return &tokenBucket{
		lastRefill: time.Now(),
		refill:     refill,
		tokens:     capacity,
		capacity:   capacity,
	}
}

func (b *tokenBucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	if elapsed := now.Sub(b.lastRefill); elapsed >= b.refill {
		refilled := b.tokens + int(elapsed/b.refill)
		if refilled > b.capacity {
			refilled = b.capacity
		}
		b.tokens = refilled
		b.lastRefill = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true
	}
	return false
}

// redisWindow implements a distributed sliding window over Redis sorted sets.
type redisWindow struct {
	client            *redis.Client
	keyPrefix         string
	requestsPerMinute int
	windowSize        time.Duration
}

func (w *redisWindow) allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("%s:%s", w.keyPrefix, key)
	now := time.Now()
	windowStart := now.Add(-w.windowSize)

	pipe := w.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", strconv.FormatInt(windowStart.Unix(), 10))
	countCmd := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{
		Score:  float64(now.Unix()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, redisKey, w.windowSize+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis throttle window: %w", err)
	}

	count, err := countCmd.Result()
	if err != nil {
		return false, fmt.Errorf("redis throttle count: %w", err)
	}
	return count < int64(w.requestsPerMinute), nil
}

// ThrottleConfig holds configuration for request throttling.
type ThrottleConfig struct {
	// RequestsPerMinute is the per-client request budget.
	RequestsPerMinute int
	// KeyGenerator derives the throttle key from a request. Defaults to
	// client IP.
	KeyGenerator func(c *gin.Context) string
	// BucketTTL is how long an idle client's bucket survives before eviction.
	BucketTTL time.Duration
	// UseRedis enables the distributed sliding window for multi-instance
	// deployments.
	UseRedis      bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Throttler limits request rates per client. Idle buckets are evicted by a
// TTL cache so memory stays bounded without a bespoke cleanup loop.
type Throttler struct {
	buckets *ttlcache.Cache[string, *tokenBucket]
	window  *redisWindow
	config  ThrottleConfig
}

// NewThrottler creates a throttler. When Redis is enabled the connection is
// verified eagerly; a dead Redis at startup is a configuration error.
func NewThrottler(ctx context.Context, config ThrottleConfig) (*Throttler, error) {
	if config.RequestsPerMinute < 1 {
		config.RequestsPerMinute = 60
	}
	if config.BucketTTL == 0 {
		config.BucketTTL = 10 * time.Minute
	}
	if config.KeyGenerator == nil {
		config.KeyGenerator = func(c *gin.Context) string { return c.ClientIP() }
	}

	t := &Throttler{
		buckets: ttlcache.New[string, *tokenBucket](
			ttlcache.WithTTL[string, *tokenBucket](config.BucketTTL),
		),
		config: config,
	}
	go t.buckets.Start()

	if config.UseRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     config.RedisAddr,
			Password: config.RedisPassword,
			DB:       config.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis throttle backend unreachable: %w", err)
		}
		t.window = &redisWindow{
			client:            client,
			keyPrefix:         "throttle",
			requestsPerMinute: config.RequestsPerMinute,
			windowSize:        time.Minute,
		}
	}

	return t, nil
}

// Middleware returns the gin handler enforcing the limit.
func (t *Throttler) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := t.config.KeyGenerator(c)

		allowed := t.allowLocal(key)
		if allowed && t.window != nil {
			ok, err := t.window.allow(c.Request.Context(), key)
			// Redis trouble degrades to local-only limiting rather than
			// rejecting traffic.
			if err == nil {
				allowed = ok
			}
		}

		if !allowed {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error": gin.H{
					"type":    "RATE_LIMIT_ERROR",
					"code":    "TOO_MANY_REQUESTS",
					"message": "Request rate limit exceeded",
				},
			})
			return
		}
		c.Next()
	}
}

// Stop shuts down the bucket eviction loop.
func (t *Throttler) Stop() {
	t.buckets.Stop()
}

func (t *Throttler) allowLocal(key string) bool {
	item := t.buckets.Get(key)
	if item == nil {
		bucket := newTokenBucket(t.config.RequestsPerMinute, time.Minute/time.Duration(t.config.RequestsPerMinute))
		item = t.buckets.Set(key, bucket, ttlcache.DefaultTTL)
	}
	return item.Value().allow()
}
