package backend

import (
	"context"
	"fmt"

	"aurax-orchestrator/internal/generation"
	"aurax-orchestrator/pkg/llmprovider"
	"aurax-orchestrator/pkg/ollama"
)

// Text serves general and freshness queries through the provider chain,
// local Ollama first and cloud providers as fallbacks.
type Text struct {
	manager *llmprovider.Manager
	local   *ollama.Client
}

var (
	_ generation.TextBackend = (*Text)(nil)
	_ generation.ModelLister = (*Text)(nil)
)

// NewText creates the text backend. local may be nil when only cloud
// providers are configured.
func NewText(manager *llmprovider.Manager, local *ollama.Client) *Text {
	return &Text{manager: manager, local: local}
}

// Generate sends a single-turn prompt through the provider chain. The result
// names the provider and model that answered, which differ from the primary
// after a fallback.
func (t *Text) Generate(ctx context.Context, req generation.TextRequest) (generation.TextResult, error) {
	llmReq := llmprovider.NewPromptRequest(req.Prompt)
	llmReq.Model = req.Model
	llmReq.MaxTokens = req.MaxTokens
	if req.Temperature != nil {
		llmReq.Temperature = *req.Temperature
	}

	resp, err := t.manager.GenerateContent(ctx, llmReq)
	if err != nil {
		return generation.TextResult{}, fmt.Errorf("text backend: %w", err)
	}
	return generation.TextResult{
		Text:     resp.Text,
		Model:    resp.ModelName,
		Provider: resp.ProviderName,
	}, nil
}

// Available reports whether the provider chain can serve a request.
func (t *Text) Available(ctx context.Context) bool {
	return t.manager.Available(ctx)
}

// DefaultModel returns the primary provider's model.
func (t *Text) DefaultModel() string {
	if p := t.manager.Primary(); p != nil {
		return p.Model()
	}
	return ""
}

// ListModels returns the models installed in the local runtime.
func (t *Text) ListModels(ctx context.Context) ([]string, error) {
	if t.local == nil {
		return []string{}, nil
	}
	models, err := t.local.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(models))
	for _, m := range models {
		names = append(names, m.Name)
	}
	return names, nil
}
