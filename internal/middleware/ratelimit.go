package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jrjohn/streamlens-go/internal/dto/response"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Rate      int           // requests allowed per period
	Period    time.Duration // refill period
	BurstSize int           // max burst per client
}

// DefaultRateLimitConfig returns the default configuration used for the
// unauthenticated public endpoints.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Rate:      60,
		Period:    time.Minute,
		BurstSize: 10,
	}
}

const (
	// bucketIdleTTL is how long a client may be silent before its
	// bucket is dropped. An idle bucket is fully refilled anyway, so
	// dropping it does not change the limit the client sees.
	bucketIdleTTL = 10 * time.Minute
	// sweepInterval bounds how often the idle sweep runs.
	sweepInterval = time.Minute
)

// tokenBucket is a single client's token bucket
type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
}

// rateLimiter tracks per-client token buckets
type rateLimiter struct {
	config     RateLimitConfig
	maxTokens  float64
	refillRate float64 // tokens per nanosecond
	buckets    map[string]*tokenBucket
	lastSweep  time.Time
	mutex      sync.Mutex
}

func newRateLimiter(config RateLimitConfig) *rateLimiter {
	return &rateLimiter{
		config:     config,
		maxTokens:  float64(config.BurstSize),
		refillRate: float64(config.Rate) / float64(config.Period.Nanoseconds()),
		buckets:    make(map[string]*tokenBucket),
		lastSweep:  time.Now(),
	}
}

// sweep drops buckets for clients that have gone quiet, keeping the
// map bounded by the set of recently active clients. Callers hold the
// mutex.
func (l *rateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepInterval {
		return
	}
	l.lastSweep = now
	for key, bucket := range l.buckets {
		if now.Sub(bucket.lastRefill) > bucketIdleTTL {
			delete(l.buckets, key)
		}
	}
}

// allow consumes one token for the given client key if available
func (l *rateLimiter) allow(key string) bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := time.Now()
	l.sweep(now)
	bucket, exists := l.buckets[key]
	if !exists {
		bucket = &tokenBucket{tokens: l.maxTokens, lastRefill: now}
		l.buckets[key] = bucket
	}

	elapsed := now.Sub(bucket.lastRefill)
	bucket.tokens += float64(elapsed.Nanoseconds()) * l.refillRate
	if bucket.tokens > l.maxTokens {
		bucket.tokens = l.maxTokens
	}
	bucket.lastRefill = now

	if bucket.tokens >= 1 {
		bucket.tokens--
		return true
	}
	return false
}

// RateLimit limits requests per client IP using a token bucket.
// Intended for the public analytics endpoints which carry no authentication.
func RateLimit(config RateLimitConfig) gin.HandlerFunc {
	limiter := newRateLimiter(config)

	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, response.NewError[any]("too many requests"))
			c.Abort()
			return
		}
		c.Next()
	}
}
