package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiterConfig holds token bucket settings for the HTTP rate limiter.
type RateLimiterConfig struct {
	RequestsPerSecond float64
	BurstCapacity     int
	Enabled           bool
}

// RateLimiter limits requests per client IP using a Token Bucket kept in Redis.
type RateLimiter struct {
	client *redis.Client
	cfg    RateLimiterConfig
	log    *zap.Logger
}

// NewRateLimiter creates a new Redis-backed rate limiter.
func NewRateLimiter(client *redis.Client, cfg RateLimiterConfig, log *zap.Logger) *RateLimiter {
	return &RateLimiter{client: client, cfg: cfg, log: log}
}

// Token Bucket algorithm implemented in Lua for atomicity.
// Bucket state: {last_refill_time, current_tokens}.
const tokenBucketScript = `
	local key = KEYS[1]
	local rate = tonumber(ARGV[1])         -- tokens per second
	local capacity = tonumber(ARGV[2])     -- max tokens in bucket
	local now = tonumber(ARGV[3])          -- current timestamp
	local requested = tonumber(ARGV[4])    -- tokens requested (always 1)

	local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
	local last_refill = tonumber(bucket[1]) or now
	local tokens = tonumber(bucket[2]) or capacity

	local elapsed = math.max(0, now - last_refill)
	tokens = math.min(capacity, tokens + elapsed * rate)

	if tokens >= requested then
		tokens = tokens - requested
		redis.call('HMSET', key, 'last_refill', now, 'tokens', tokens)
		redis.call('EXPIRE', key, 60)
		return 1
	else
		redis.call('HMSET', key, 'last_refill', now, 'tokens', tokens)
		redis.call('EXPIRE', key, 60)
		return 0
	end
`

// Allow consumes one token for the given key. It fails open: a Redis error
// is reported but the request is allowed.
func (rl *RateLimiter) Allow(c *gin.Context, key string) bool {
	now := float64(rl.client.Time(c.Request.Context()).Val().Unix())

	allowed, err := rl.client.Eval(c.Request.Context(), tokenBucketScript, []string{key},
		rl.cfg.RequestsPerSecond,
		rl.cfg.BurstCapacity,
		now,
		1,
	).Int64()
	if err != nil {
		rl.log.Warn("rate limiter redis error, allowing request", zap.String("key", key), zap.Error(err))
		return true
	}

	return allowed == 1
}

// RateLimit returns a Gin middleware enforcing the token bucket per
// method, path, and client IP.
func RateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || !rl.cfg.Enabled {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:tb:%s:%s:%s", c.Request.Method, c.Request.URL.Path, c.ClientIP())

		if !rl.Allow(c, key) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "rate_limit_exceeded",
				"message": fmt.Sprintf("Rate limit exceeded: %.2f requests/second (burst capacity: %d)",
					rl.cfg.RequestsPerSecond, rl.cfg.BurstCapacity),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
