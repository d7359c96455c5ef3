package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go-portfolio/internal/domain"
	"go-portfolio/pkg/apperror"
	"go-portfolio/pkg/logger"
	"go-portfolio/pkg/metrics"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	Enabled bool
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Key prefix for the store (default: "rl:contact:")
	KeyPrefix string
	// Custom key extractor (default: client IP)
	KeyFunc func(*gin.Context) string
	// Whether to fail closed (reject) when the primary store errors
	FailClosed bool
}

// RateLimitStore records a hit for key and reports whether it is allowed.
type RateLimitStore interface {
	Take(ctx context.Context, key string, limit int, window time.Duration) (allowed bool, remaining int, resetAt time.Time, err error)
}

// ContactRateLimitConfig returns the per-IP limit for the contact endpoint.
func ContactRateLimitConfig(enabled bool, limit int, window time.Duration) RateLimitConfig {
	return RateLimitConfig{
		Enabled:    enabled,
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:contact:",
		FailClosed: false, // Fail open by default for availability
		KeyFunc:    GetClientIP,
	}
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// store may be nil; fallback is used whenever store is nil or errors.
func RateLimitMiddleware(config RateLimitConfig, store RateLimitStore, fallback *MemoryRateLimitStore, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !config.Enabled || config.Limit <= 0 {
			c.Next()
			return
		}

		key := config.KeyPrefix + config.KeyFunc(c)

		var (
			allowed   bool
			remaining int
			resetAt   time.Time
			err       error
		)

		primary := store
		if primary != nil {
			allowed, remaining, resetAt, err = primary.Take(c.Request.Context(), key, config.Limit, config.Window)
			if err != nil {
				logger.Log.Warn("Rate limit store error", "error", err, "key", key)
				if config.FailClosed {
					_ = c.Error(apperror.ServiceUnavailable("Service temporarily unavailable. Please try again.", err))
					c.Abort()
					return
				}
				primary = nil
			}
		}
		if primary == nil {
			allowed, remaining, resetAt, _ = fallback.Take(c.Request.Context(), key, config.Limit, config.Window)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if !allowed {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			logger.Log.Warn("Rate limit exceeded", "ip", GetClientIP(c), "path", c.FullPath())
			m.RecordRateLimited(c.FullPath())

			_ = c.Error(apperror.TooManyRequests(domain.RateLimitedMessage))
			c.Abort()
			return
		}

		c.Next()
	}
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// RedisRateLimitStore is a fixed-window counter shared by every instance.
type RedisRateLimitStore struct {
	client *goredis.Client
}

func NewRedisRateLimitStore(client *goredis.Client) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client}
}

func (s *RedisRateLimitStore) Take(ctx context.Context, key string, limit int, window time.Duration) (bool, int, time.Time, error) {
	ttlSeconds := int(window.Seconds())

	result, err := s.client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return false, 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	count, ttl, err := parseRateLimitReply(result)
	if err != nil {
		return false, 0, time.Time{}, err
	}

	resetAt := time.Now().Add(time.Duration(ttl) * time.Second)
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return int(count) <= limit, remaining, resetAt, nil
}

// parseRateLimitReply reads the {count, ttl} pair returned by the script.
func parseRateLimitReply(result interface{}) (count, ttl int64, err error) {
	arr, ok := result.([]interface{})
	if !ok || len(arr) != 2 {
		return 0, 0, fmt.Errorf("unexpected redis result format: %T", result)
	}
	count, ok = arr[0].(int64)
	if !ok || count < 1 {
		return 0, 0, fmt.Errorf("unexpected redis counter value: %v", arr[0])
	}
	ttl, ok = arr[1].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected redis ttl value: %v", arr[1])
	}
	return count, ttl, nil
}

// MemoryRateLimitStore keeps a sliding log of accepted hits per key.
// Rejected requests are not recorded.
type MemoryRateLimitStore struct {
	mu   sync.Mutex
	hits map[string][]time.Time
	now  func() time.Time
}

func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

func (s *MemoryRateLimitStore) Take(_ context.Context, key string, limit int, window time.Duration) (bool, int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	recent := s.prune(key, now, window)

	if len(recent) >= limit {
		return false, 0, recent[0].Add(window), nil
	}

	recent = append(recent, now)
	s.hits[key] = recent
	return true, limit - len(recent), recent[0].Add(window), nil
}

// prune drops hits older than window. Must be called with mu held.
func (s *MemoryRateLimitStore) prune(key string, now time.Time, window time.Duration) []time.Time {
	hits := s.hits[key]
	kept := hits[:0]
	for _, ts := range hits {
		if now.Sub(ts) < window {
			kept = append(kept, ts)
		}
	}
	if len(kept) == 0 {
		delete(s.hits, key)
		return nil
	}
	s.hits[key] = kept
	return kept
}

// Cleanup removes keys whose hits have all expired.
func (s *MemoryRateLimitStore) Cleanup(window time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key := range s.hits {
		s.prune(key, now, window)
	}
}

// StartCleanup prunes the store periodically until ctx is done.
func (s *MemoryRateLimitStore) StartCleanup(ctx context.Context, window time.Duration) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Cleanup(window)
			}
		}
	}()
}
