package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"aurax-orchestrator/pkg/response"
)

const (
	maxTrackedClients = 10000
	limiterTTL        = 10 * time.Minute
)

// rateLimiter keeps one token bucket per client, evicting idle clients.
type rateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requests int, window time.Duration) *rateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	ttl := limiterTTL
	if window > ttl {
		ttl = window
	}

	return &rateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxTrackedClients, nil, ttl),
		rate:     rate.Limit(float64(requests) / window.Seconds()),
		burst:    requests,
	}
}

func (rl *rateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(rl.rate, rl.burst)
		rl.limiters.Add(key, limiter)
	}
	return limiter
}

func (rl *rateLimiter) allow(key string) bool {
	return rl.limiter(key).Allow()
}

// RateLimit rejects clients that exceed their request budget with 429.
// Clients are keyed by gin's ClientIP, which only honors forwarding headers
// from the engine's trusted proxies. It is a no-op when rate limiting is disabled.
func (mw Middleware) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if mw.limiter == nil {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if !mw.limiter.allow(ip) {
			mw.l.Warnf(c.Request.Context(), "middleware.RateLimit: limit exceeded for %s", ip)
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
