package llmprovider

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"aurax-orchestrator/config"
	"aurax-orchestrator/pkg/log"
	"aurax-orchestrator/pkg/ollama"
)

const (
	geminiOpenAIBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	qwenOpenAIBaseURL   = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
)

// InitializeProviders builds the provider chain: the local Ollama runtime
// first, then enabled cloud providers sorted by priority. Cloud providers
// that fail to initialize are skipped with a warning.
func InitializeProviders(local *ollama.Client, cfg *config.LLMConfig, l log.Logger) ([]Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("LLM config is nil")
	}

	var providers []Provider
	if local != nil {
		providers = append(providers, NewOllamaAdapter(local))
	}

	var enabledProviders []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabledProviders = append(enabledProviders, p)
		}
	}

	sort.SliceStable(enabledProviders, func(i, j int) bool {
		return enabledProviders[i].Priority < enabledProviders[j].Priority
	})

	var initErrors []string
	for _, p := range enabledProviders {
		provider, err := createProvider(p)
		if err != nil {
			errMsg := fmt.Sprintf("failed to initialize provider %s (priority %d): %v", p.Name, p.Priority, err)
			initErrors = append(initErrors, errMsg)
			if l != nil {
				l.Warnf(context.Background(), "llmprovider: %s", errMsg)
			}
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		if len(initErrors) > 0 {
			return nil, fmt.Errorf("no providers successfully initialized: %s", strings.Join(initErrors, "; "))
		}
		return nil, ErrNoProvidersConfigured
	}

	return providers, nil
}

// NewManagerFromConfig parses the durations in cfg and builds a Manager.
func NewManagerFromConfig(providers []Provider, cfg *config.LLMConfig, l log.Logger) (*Manager, error) {
	retryDelay, err := parseDuration(cfg.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("llm.retry_delay: %w", err)
	}
	maxTotal, err := parseDuration(cfg.MaxTotalTimeout)
	if err != nil {
		return nil, fmt.Errorf("llm.max_total_timeout: %w", err)
	}

	return NewManager(providers, &Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      retryDelay,
		MaxTotalTimeout: maxTotal,
	}, l), nil
}

// createProvider creates a concrete provider instance based on the provider config
func createProvider(cfg config.ProviderConfig) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("provider %s: API key is required", cfg.Name)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("provider %s: model is required", cfg.Name)
	}

	timeout, err := parseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("provider %s: timeout: %w", cfg.Name, err)
	}

	switch strings.ToLower(cfg.Name) {
	case "openai", "deepseek":
		return NewOpenAIProvider(strings.ToLower(cfg.Name), cfg.APIKey, cfg.BaseURL, cfg.Model, timeout), nil

	case "qwen", "alibaba":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = qwenOpenAIBaseURL
		}
		return NewOpenAIProvider("qwen", cfg.APIKey, baseURL, cfg.Model, timeout), nil

	case "gemini":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = geminiOpenAIBaseURL
		}
		return NewOpenAIProvider("gemini", cfg.APIKey, baseURL, cfg.Model, timeout), nil

	case "anthropic", "claude":
		return NewAnthropicProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, timeout), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Name)
	}
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	return time.ParseDuration(s)
}
