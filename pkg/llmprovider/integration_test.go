package llmprovider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aurax-orchestrator/config"
	"aurax-orchestrator/pkg/llmprovider"
	"aurax-orchestrator/pkg/log"
	"aurax-orchestrator/pkg/ollama"
)

// TestIntegration_LocalThenCloudFallback runs a request through a failing
// local Ollama runtime and falls back to an OpenAI-compatible endpoint.
func TestIntegration_LocalThenCloudFallback(t *testing.T) {
	ollamaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ollamaSrv.Close()

	var cloudCalls int
	cloudSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cloudCalls++
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "cmpl-1",
			"object": "chat.completion",
			"created": 1,
			"model": "deepseek-chat",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": " Paris "}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 5, "completion_tokens": 1, "total_tokens": 6}
		}`))
	}))
	defer cloudSrv.Close()

	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{
				Name:     "deepseek",
				Enabled:  true,
				Priority: 1,
				APIKey:   "test-key",
				BaseURL:  cloudSrv.URL + "/v1/",
				Model:    "deepseek-chat",
				Timeout:  "10s",
			},
		},
		FallbackEnabled: true,
		RetryAttempts:   1,
		RetryDelay:      "10ms",
		MaxTotalTimeout: "30s",
	}

	local := ollama.New(ollama.Config{BaseURL: ollamaSrv.URL})
	providers, err := llmprovider.InitializeProviders(local, cfg, log.NewNop())
	if err != nil {
		t.Fatalf("Failed to initialize providers: %v", err)
	}
	if len(providers) != 2 || providers[0].Name() != "ollama" || providers[1].Name() != "deepseek" {
		t.Fatalf("Unexpected provider chain: %d", len(providers))
	}

	manager, err := llmprovider.NewManagerFromConfig(providers, cfg, log.NewNop())
	if err != nil {
		t.Fatalf("Failed to build manager: %v", err)
	}

	resp, err := manager.GenerateContent(context.Background(), llmprovider.NewPromptRequest("Capital of France?"))
	if err != nil {
		t.Fatalf("Expected fallback success, got: %v", err)
	}
	if resp.Text != "Paris" || resp.ProviderName != "deepseek" {
		t.Errorf("Unexpected response: %+v", resp)
	}
	if resp.Usage.TotalTokens != 6 {
		t.Errorf("Expected usage from cloud provider, got %+v", resp.Usage)
	}
	if cloudCalls != 1 {
		t.Errorf("Expected a single cloud call, got %d", cloudCalls)
	}
}

func TestIntegration_ProviderPriorityOrdering(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "anthropic", Enabled: true, Priority: 3, APIKey: "k", Model: "claude-3-5-haiku-latest"},
			{Name: "gemini", Enabled: true, Priority: 1, APIKey: "k", Model: "gemini-2.5-flash"},
			{Name: "qwen", Enabled: true, Priority: 2, APIKey: "k", Model: "qwen-plus"},
			{Name: "openai", Enabled: false, Priority: 4, APIKey: "k", Model: "gpt-4o-mini"},
		},
	}

	providers, err := llmprovider.InitializeProviders(nil, cfg, nil)
	if err != nil {
		t.Fatalf("Failed to initialize providers: %v", err)
	}

	want := []string{"gemini", "qwen", "anthropic"}
	if len(providers) != len(want) {
		t.Fatalf("Expected %d providers, got %d", len(want), len(providers))
	}
	for i, name := range want {
		if providers[i].Name() != name {
			t.Errorf("Position %d: expected %s, got %s", i, name, providers[i].Name())
		}
	}
}

func TestIntegration_ConfigValidation(t *testing.T) {
	t.Run("Unknown provider skipped", func(t *testing.T) {
		cfg := &config.LLMConfig{Providers: []config.ProviderConfig{
			{Name: "mystery", Enabled: true, Priority: 1, APIKey: "k", Model: "m"},
		}}
		_, err := llmprovider.InitializeProviders(nil, cfg, nil)
		if err == nil || !strings.Contains(err.Error(), "unknown provider") {
			t.Errorf("Expected unknown provider error, got: %v", err)
		}
	})

	t.Run("Missing API key skipped but local kept", func(t *testing.T) {
		cfg := &config.LLMConfig{Providers: []config.ProviderConfig{
			{Name: "openai", Enabled: true, Priority: 1, Model: "gpt-4o-mini"},
		}}
		providers, err := llmprovider.InitializeProviders(ollama.New(ollama.Config{}), cfg, nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if len(providers) != 1 || providers[0].Name() != "ollama" {
			t.Errorf("Expected only the local provider, got %d", len(providers))
		}
	})

	t.Run("Nothing configured", func(t *testing.T) {
		_, err := llmprovider.InitializeProviders(nil, &config.LLMConfig{}, nil)
		if !errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
			t.Errorf("Expected ErrNoProvidersConfigured, got: %v", err)
		}
	})

	t.Run("Bad retry delay", func(t *testing.T) {
		_, err := llmprovider.NewManagerFromConfig(nil, &config.LLMConfig{RetryDelay: "soon"}, nil)
		if err == nil {
			t.Error("Expected duration parse error")
		}
	})
}
