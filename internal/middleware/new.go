package middleware

import (
	"time"

	"aurax-orchestrator/pkg/log"
	"aurax-orchestrator/pkg/metrics"
)

// Config configures the HTTP middlewares.
type Config struct {
	AllowedOrigins   []string
	RateLimitEnabled bool
	RateLimitCount   int
	RateLimitWindow  time.Duration
}

type Middleware struct {
	l       log.Logger
	metrics *metrics.Metrics
	origins map[string]struct{}
	limiter *rateLimiter
}

func New(l log.Logger, m *metrics.Metrics, cfg Config) Middleware {
	origins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		origins[o] = struct{}{}
	}

	mw := Middleware{
		l:       l,
		metrics: m,
		origins: origins,
	}
	if cfg.RateLimitEnabled {
		mw.limiter = newRateLimiter(cfg.RateLimitCount, cfg.RateLimitWindow)
	}
	return mw
}
