package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"aurax-orchestrator/pkg/log"
)

const defaultRetryDelay = 200 * time.Millisecond

// Manager orchestrates provider selection, fallback, and retry logic
type Manager struct {
	providers []Provider
	config    *Config
	logger    log.Logger
}

// Config defines configuration for the Provider Manager
type Config struct {
	FallbackEnabled bool
	RetryAttempts   int
	RetryDelay      time.Duration
	MaxTotalTimeout time.Duration // global timeout for the entire fallback chain
}

// NewManager creates a new Provider Manager with the given providers, config, and logger
func NewManager(providers []Provider, config *Config, logger log.Logger) *Manager {
	if config == nil {
		config = &Config{RetryAttempts: 1}
	}
	return &Manager{
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

// Providers returns the chain in priority order.
func (m *Manager) Providers() []Provider {
	return m.providers
}

// Primary returns the first provider in the chain, or nil.
func (m *Manager) Primary() Provider {
	if len(m.providers) == 0 {
		return nil
	}
	return m.providers[0]
}

// Available reports whether any provider that GenerateContent may use is
// reachable. Providers without a HealthChecker are assumed reachable.
// Only the primary is considered when fallback is disabled.
func (m *Manager) Available(ctx context.Context) bool {
	for i, p := range m.providers {
		if i > 0 && !m.config.FallbackEnabled {
			break
		}
		hc, ok := p.(HealthChecker)
		if !ok || hc.Available(ctx) {
			return true
		}
	}
	return false
}

// GenerateContent iterates through providers in priority order with fallback logic.
// req.Model applies to the primary provider only; fallbacks use their own default model.
func (m *Manager) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if len(m.providers) == 0 {
		return nil, ErrNoProvidersConfigured
	}
	if req == nil || len(req.Messages) == 0 {
		return nil, ErrInvalidRequest
	}

	var cancel context.CancelFunc
	if m.config.MaxTotalTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, m.config.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error

	for i, provider := range m.providers {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("global timeout exceeded after trying %d provider(s): %w", i, ctx.Err())
		default:
		}

		preq := req
		if i > 0 && req.Model != "" {
			cp := *req
			cp.Model = ""
			preq = &cp
		}

		resp, err := m.generateWithRetry(ctx, provider, preq)
		if err == nil {
			m.logSuccess(ctx, provider, resp)
			return resp, nil
		}

		m.logFailure(ctx, provider, err)
		lastErr = err

		if !m.config.FallbackEnabled {
			break
		}
	}

	return nil, fmt.Errorf("%w: %v", ErrAllProvidersFailed, lastErr)
}

// generateWithRetry retries one provider with exponential backoff.
func (m *Manager) generateWithRetry(ctx context.Context, provider Provider, req *Request) (*Response, error) {
	attempts := m.config.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := m.config.RetryDelay
	if delay <= 0 {
		delay = defaultRetryDelay
	}
	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.NewExponential(delay))

	var resp *Response
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		r, err := provider.GenerateContent(ctx, req)
		if err != nil {
			if permanent(err) {
				return err
			}
			return retry.RetryableError(err)
		}
		resp = r
		return nil
	})
	if err != nil {
		return nil, wrap(provider.Name(), err)
	}
	return resp, nil
}

func permanent(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// logSuccess logs successful LLM generation with metrics
func (m *Manager) logSuccess(ctx context.Context, provider Provider, resp *Response) {
	usage := resp.Usage
	if usage == nil {
		usage = &Usage{}
	}
	m.logger.Info(ctx, "LLM generation successful",
		"provider", provider.Name(),
		"model", resp.ModelName,
		"input_tokens", usage.InputTokens,
		"output_tokens", usage.OutputTokens,
	)
}

// logFailure logs failed LLM generation attempts
func (m *Manager) logFailure(ctx context.Context, provider Provider, err error) {
	m.logger.Warn(ctx, "LLM generation failed",
		"provider", provider.Name(),
		"model", provider.Model(),
		"error", err.Error(),
	)
}
