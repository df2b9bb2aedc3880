package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/goresilience"
	"github.com/slok/goresilience/circuitbreaker"
	"github.com/slok/goresilience/timeout"
)

// ResilienceConfig configures the timeout and circuit breaker around an adapter.
type ResilienceConfig struct {
	Timeout                     time.Duration
	ErrorPercentThresholdToOpen int
	MinimumRequestToOpen        int
	WaitDurationInOpenState     time.Duration
}

// DefaultResilienceConfig returns the adapter defaults.
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		Timeout:                     120 * time.Second,
		ErrorPercentThresholdToOpen: 50,
		MinimumRequestToOpen:        5,
		WaitDurationInOpenState:     30 * time.Second,
	}
}

func (c ResilienceConfig) withDefaults() ResilienceConfig {
	d := DefaultResilienceConfig()
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.ErrorPercentThresholdToOpen <= 0 {
		c.ErrorPercentThresholdToOpen = d.ErrorPercentThresholdToOpen
	}
	if c.MinimumRequestToOpen <= 0 {
		c.MinimumRequestToOpen = d.MinimumRequestToOpen
	}
	if c.WaitDurationInOpenState <= 0 {
		c.WaitDurationInOpenState = d.WaitDurationInOpenState
	}
	return c
}

// newRunner chains timeout then circuit breaker.
func newRunner(cfg ResilienceConfig) goresilience.Runner {
	cfg = cfg.withDefaults()
	return goresilience.RunnerChain(
		timeout.NewMiddleware(timeout.Config{Timeout: cfg.Timeout}),
		circuitbreaker.NewMiddleware(circuitbreaker.Config{
			ErrorPercentThresholdToOpen:        cfg.ErrorPercentThresholdToOpen,
			MinimumRequestToOpen:               cfg.MinimumRequestToOpen,
			SuccessfulRequiredOnHalfOpen:       1,
			WaitDurationInOpenState:            cfg.WaitDurationInOpenState,
			MetricsSlidingWindowBucketQuantity: 10,
			MetricsBucketDuration:              time.Second,
		}),
	)
}

// run executes fn through the runner, converting panics into errors.
func run(ctx context.Context, r goresilience.Runner, fn func(ctx context.Context) error) error {
	return r.Run(ctx, func(ctx context.Context) (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("panic recovered: %v", rec)
			}
		}()
		return fn(ctx)
	})
}
