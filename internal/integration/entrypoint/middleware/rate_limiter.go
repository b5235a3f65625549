// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	domainerror "github.com/finance-tracker/dashboard/internal/domain/error"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 30
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute

	rateLimitKeyPrefix = "ratelimit:"

	// sweepThreshold is the number of tracked keys above which expired
	// in-memory entries are purged.
	sweepThreshold = 10000
)

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// RateLimiter provides fixed-window rate limiting keyed by the authenticated
// user, or by client IP for anonymous requests. Counters live in redis when a
// client is configured and in process memory otherwise.
type RateLimiter struct {
	mu             sync.Mutex
	entries        map[string]*rateLimitEntry
	redis          *redis.Client
	maxAttempts    int
	windowDuration time.Duration
	now            func() time.Time
}

// NewRateLimiter creates a new in-memory rate limiter with default settings.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(nil, defaultMaxAttempts, defaultWindowDuration)
}

// NewRateLimiterWithConfig creates a new rate limiter with custom settings.
// client may be nil to keep counters in memory.
func NewRateLimiterWithConfig(client *redis.Client, maxAttempts int, windowDuration time.Duration) *RateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if windowDuration <= 0 {
		windowDuration = defaultWindowDuration
	}
	return &RateLimiter{
		entries:        make(map[string]*rateLimitEntry),
		redis:          client,
		maxAttempts:    maxAttempts,
		windowDuration: windowDuration,
		now:            time.Now,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if key == "" {
			key = c.Request.RemoteAddr
		}
		if userID, ok := GetUserIDFromContext(c); ok {
			key = "user:" + userID.String()
		}

		allowed, err := rl.allow(c.Request.Context(), key)
		if err != nil {
			// Fail open.
			slog.Warn("Rate limiter unavailable", "key", key, "error", err)
			allowed = true
		}

		if !allowed {
			c.Header("Retry-After", fmt.Sprintf("%d", int(rl.windowDuration.Seconds())))
			abortWithAuthError(c, http.StatusTooManyRequests, domainerror.NewAuthError(
				domainerror.ErrCodeRateLimited,
				"Too many requests. Please try again later.",
				domainerror.ErrRateLimited,
			))
			return
		}

		c.Next()
	}
}

// allow checks if a request from the given key should be allowed.
func (rl *RateLimiter) allow(ctx context.Context, key string) (bool, error) {
	if rl.redis != nil {
		return rl.allowRedis(ctx, key)
	}
	return rl.allowMemory(key), nil
}

// allowRedis counts the request in a redis key that expires with the window.
// A counter left without a TTL gets one on the next request.
func (rl *RateLimiter) allowRedis(ctx context.Context, key string) (bool, error) {
	redisKey := rateLimitKeyPrefix + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := rl.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		ttl = pipe.TTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to count request: %w", err)
	}

	if ttl.Val() < 0 {
		if err := rl.redis.Expire(ctx, redisKey, rl.windowDuration).Err(); err != nil {
			return false, fmt.Errorf("failed to set window expiry: %w", err)
		}
	}

	return incr.Val() <= int64(rl.maxAttempts), nil
}

func (rl *RateLimiter) allowMemory(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	entry, exists := rl.entries[key]
	if !exists && len(rl.entries) >= sweepThreshold {
		for k, e := range rl.entries {
			if now.After(e.resetTime) {
				delete(rl.entries, k)
			}
		}
	}
	if !exists || now.After(entry.resetTime) {
		rl.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(rl.windowDuration),
		}
		return true
	}

	if entry.attempts < rl.maxAttempts {
		entry.attempts++
		return true
	}

	return false
}

// Reset clears the in-memory rate limiter state.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries = make(map[string]*rateLimitEntry)
}
