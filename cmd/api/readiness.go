package main

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"aurax-orchestrator/config"
	"aurax-orchestrator/internal/bootstrap"
	"aurax-orchestrator/pkg/log"
)

const (
	defaultReadinessInterval = 5 * time.Second
	defaultReadinessMaxWait  = 20 * time.Minute
)

var errNotReady = errors.New("text backend not reachable")

// waitForDependencies polls the text backend until it answers or MaxWait
// elapses, then makes sure the knowledge collection exists. The server keeps
// serving either way; /ready reflects the live state.
func waitForDependencies(ctx context.Context, l log.Logger, comps *bootstrap.Components, cfg config.ReadinessConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultReadinessInterval
	}
	if cfg.MaxWait <= 0 {
		cfg.MaxWait = defaultReadinessMaxWait
	}
	backoff := retry.WithMaxDuration(cfg.MaxWait, retry.NewConstant(cfg.Interval))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if comps.Text.Available(ctx) {
			return nil
		}
		if attempt == 1 || attempt%12 == 0 {
			l.Infof(ctx, "Waiting for text backend (attempt %d)...", attempt)
		}
		return retry.RetryableError(errNotReady)
	})
	if err != nil {
		l.Warnf(ctx, "Text backend still unavailable after %s: %v", cfg.MaxWait, err)
	} else {
		l.Infof(ctx, "Text backend ready after %d attempt(s)", attempt)
	}

	if comps.Knowledge == nil {
		return
	}
	created, err := comps.Knowledge.EnsureCollection(ctx)
	switch {
	case err != nil:
		l.Warnf(ctx, "Knowledge collection check failed: %v", err)
	case created:
		l.Info(ctx, "Knowledge collection created")
	}
}
