package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter hands each client IP its own token bucket.
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rate     rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time

	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewRateLimiter allows rps requests per second per client, with bursts up to
// burst. Buckets idle for five minutes are forgotten.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	rl := &RateLimiter{
		limiters:    make(map[string]*clientLimiter),
		rate:        rate.Limit(rps),
		burst:       burst,
		idle:        5 * time.Minute,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	go rl.cleanupLoop()
	return rl
}

// Stop ends the background cleanup.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCleanup) })
}

func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	entry, ok := rl.limiters[key]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = entry
	}
	now := rl.now()
	entry.lastSeen = now
	rl.mu.Unlock()

	return entry.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.idle)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stopCleanup:
			return
		}
	}
}

func (rl *RateLimiter) cleanup() {
	cutoff := rl.now().Add(-rl.idle)

	rl.mu.Lock()
	defer rl.mu.Unlock()
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// Middleware rejects clients over their budget with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error: "too many requests",
				Code:  codeRateLimited,
			})
			return
		}
		c.Next()
	}
}
