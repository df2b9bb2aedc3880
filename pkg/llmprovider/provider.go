package llmprovider

import (
	"context"
	"strings"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// GenerateContent sends a generation request and returns a response
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name (e.g., "ollama", "deepseek")
	Name() string

	// Model returns the provider's default model
	Model() string
}

// HealthChecker is implemented by providers that can report reachability.
type HealthChecker interface {
	Available(ctx context.Context) bool
}

// Role values for Message.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Request is a normalized text generation request.
type Request struct {
	System   string
	Messages []Message

	// Model overrides the provider default when set. It is only honored by
	// the provider it belongs to; see Manager.GenerateContent.
	Model       string
	Temperature float64
	MaxTokens   int
}

// Message is one conversation turn.
type Message struct {
	Role string
	Text string
}

// NewPromptRequest builds a single-turn request.
func NewPromptRequest(prompt string) *Request {
	return &Request{Messages: []Message{{Role: RoleUser, Text: prompt}}}
}

// Prompt flattens the conversation into a single prompt for
// completion-style backends.
func (r *Request) Prompt() string {
	if len(r.Messages) == 1 {
		return r.Messages[0].Text
	}
	var b strings.Builder
	for i, m := range r.Messages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if m.Role == RoleAssistant {
			b.WriteString("Assistant: ")
		} else {
			b.WriteString("Human: ")
		}
		b.WriteString(m.Text)
	}
	return b.String()
}

// Response is a normalized generation response.
type Response struct {
	Text         string
	ProviderName string
	ModelName    string
	Usage        *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
