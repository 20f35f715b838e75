package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/beout/beout-admin/pkg/response"
	"github.com/gin-gonic/gin"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Rate is the number of tokens refilled per second
	Rate float64
	// Burst is the token bucket capacity
	Burst int
	// CleanupInterval for stale entries
	CleanupInterval time.Duration
	// EntryTTL after which an idle client is forgotten
	EntryTTL time.Duration
}

// LoginRateLimitConfig allows a burst of 5 login attempts, then one every 12 seconds
func LoginRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Rate:            1.0 / 12,
		Burst:           5,
		CleanupInterval: time.Minute,
		EntryTTL:        15 * time.Minute,
	}
}

// rateLimitEntry tracks rate limit state for a key
type rateLimitEntry struct {
	tokens     float64
	lastUpdate time.Time
	mu         sync.Mutex
}

// LocalRateLimiter implements in-memory token bucket rate limiting
type LocalRateLimiter struct {
	config   RateLimitConfig
	entries  sync.Map
	stop     chan struct{}
	stopOnce sync.Once
	now      func() time.Time

	totalAllowed  uint64
	totalRejected uint64
}

// NewLocalRateLimiter creates a new local rate limiter
func NewLocalRateLimiter(config RateLimitConfig) *LocalRateLimiter {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = time.Minute
	}
	if config.EntryTTL <= 0 {
		config.EntryTTL = 10 * time.Minute
	}

	rl := &LocalRateLimiter{
		config: config,
		stop:   make(chan struct{}),
		now:    time.Now,
	}

	go rl.cleanup()

	return rl
}

// Allow checks if a request for key should be allowed
func (rl *LocalRateLimiter) Allow(key string) bool {
	now := rl.now()

	entry, _ := rl.entries.LoadOrStore(key, &rateLimitEntry{
		tokens:     float64(rl.config.Burst),
		lastUpdate: now,
	})
	e := entry.(*rateLimitEntry)

	e.mu.Lock()
	defer e.mu.Unlock()

	elapsed := now.Sub(e.lastUpdate).Seconds()
	e.tokens = min(float64(rl.config.Burst), e.tokens+elapsed*rl.config.Rate)
	e.lastUpdate = now

	if e.tokens >= 1 {
		e.tokens--
		atomic.AddUint64(&rl.totalAllowed, 1)
		return true
	}

	atomic.AddUint64(&rl.totalRejected, 1)
	return false
}

// GetStats returns rate limiter statistics
func (rl *LocalRateLimiter) GetStats() (allowed, rejected uint64) {
	return atomic.LoadUint64(&rl.totalAllowed), atomic.LoadUint64(&rl.totalRejected)
}

// cleanup periodically removes stale entries
func (rl *LocalRateLimiter) cleanup() {
	ticker := time.NewTicker(rl.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := rl.now().Add(-rl.config.EntryTTL)
			rl.entries.Range(func(key, value interface{}) bool {
				e := value.(*rateLimitEntry)
				e.mu.Lock()
				if e.lastUpdate.Before(cutoff) {
					rl.entries.Delete(key)
				}
				e.mu.Unlock()
				return true
			})
		case <-rl.stop:
			return
		}
	}
}

// Stop stops the cleanup goroutine
func (rl *LocalRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

// RateLimitByIP rejects clients that exhausted their bucket with 429
func RateLimitByIP(rl *LocalRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.Allow(c.ClientIP()) {
			c.Next()
			return
		}

		retryAfter := 1
		if rl.config.Rate > 0 {
			retryAfter = int(1/rl.config.Rate) + 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, response.TooManyRequests("Too many login attempts, please try again later"))
	}
}
