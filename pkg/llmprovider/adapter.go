package llmprovider

import (
	"context"
	"errors"

	"aurax-orchestrator/pkg/ollama"
)

// OllamaAdapter adapts pkg/ollama to the Provider interface.
type OllamaAdapter struct {
	client *ollama.Client
}

var (
	_ Provider      = (*OllamaAdapter)(nil)
	_ HealthChecker = (*OllamaAdapter)(nil)
)

// NewOllamaAdapter creates a new Ollama adapter
func NewOllamaAdapter(client *ollama.Client) *OllamaAdapter {
	return &OllamaAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *OllamaAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	res, err := a.client.Generate(ctx, ollama.GenerateRequest{
		Model:  req.Model,
		Prompt: req.Prompt(),
		System: req.System,
		Options: ollama.Options{
			NumPredict:  req.MaxTokens,
			Temperature: req.Temperature,
		},
	})
	if err != nil {
		if errors.Is(err, ollama.ErrEmptyPrompt) {
			return nil, ErrInvalidRequest
		}
		if errors.Is(err, ollama.ErrEmptyResponse) {
			return nil, ErrEmptyContent
		}
		return nil, err
	}

	return &Response{
		Text:         res.Text,
		ProviderName: a.Name(),
		ModelName:    res.Model,
		Usage: &Usage{
			InputTokens:  res.PromptEvalCount,
			OutputTokens: res.EvalCount,
			TotalTokens:  res.PromptEvalCount + res.EvalCount,
		},
	}, nil
}

// Available reports whether the Ollama runtime is reachable.
func (a *OllamaAdapter) Available(ctx context.Context) bool {
	return a.client.IsAvailable(ctx)
}

// Name returns provider name
func (a *OllamaAdapter) Name() string {
	return "ollama"
}

// Model returns model name
func (a *OllamaAdapter) Model() string {
	return a.client.Model()
}
