package llmprovider

import (
	"context"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicDefaultMaxTokens = 2048

// AnthropicProvider calls the Anthropic Messages API.
type AnthropicProvider struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
}

var _ Provider = (*AnthropicProvider)(nil)

// NewAnthropicProvider creates a provider for the given model.
func NewAnthropicProvider(apiKey, baseURL, model string, timeout time.Duration) *AnthropicProvider {
	opts := []anthropicoption.RequestOption{anthropicoption.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, anthropicoption.WithBaseURL(baseURL))
	}
	return &AnthropicProvider{
		client:  anthropic.NewClient(opts...),
		model:   model,
		timeout: timeout,
	}
}

// GenerateContent implements Provider interface
func (p *AnthropicProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	model := req.Model
	if model == "" {
		model = p.model
	}
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}

	msgs := make([]anthropic.MessageParam, 0, len(req.Messages))
	for _, m := range req.Messages {
		block := anthropic.NewTextBlock(m.Text)
		if m.Role == RoleAssistant {
			msgs = append(msgs, anthropic.NewAssistantMessage(block))
		} else {
			msgs = append(msgs, anthropic.NewUserMessage(block))
		}
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages:  msgs,
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}
	if req.Temperature > 0 {
		params.Temperature = anthropic.Float(req.Temperature)
	}

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return nil, ErrEmptyContent
	}

	in, out := int(msg.Usage.InputTokens), int(msg.Usage.OutputTokens)
	return &Response{
		Text:         text,
		ProviderName: p.Name(),
		ModelName:    model,
		Usage:        &Usage{InputTokens: in, OutputTokens: out, TotalTokens: in + out},
	}, nil
}

// Name returns provider name
func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

// Model returns model name
func (p *AnthropicProvider) Model() string {
	return p.model
}
