package llmprovider

import (
	"context"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIProvider serves every OpenAI-compatible chat API: OpenAI itself,
// DeepSeek, Qwen (DashScope) and Gemini's compatibility endpoint.
type OpenAIProvider struct {
	client  openai.Client
	name    string
	model   string
	timeout time.Duration
}

var _ Provider = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a provider. An empty name is derived from baseURL.
func NewOpenAIProvider(name, apiKey, baseURL, model string, timeout time.Duration) *OpenAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if name == "" {
		name = providerNameFromURL(baseURL)
	}

	return &OpenAIProvider{
		client:  openai.NewClient(opts...),
		name:    name,
		model:   model,
		timeout: timeout,
	}
}

func providerNameFromURL(baseURL string) string {
	switch {
	case strings.Contains(baseURL, "deepseek"):
		return "deepseek"
	case strings.Contains(baseURL, "dashscope"):
		return "qwen"
	case strings.Contains(baseURL, "generativelanguage.googleapis.com"):
		return "gemini"
	default:
		return "openai"
	}
}

// GenerateContent implements Provider interface
func (p *OpenAIProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	model := req.Model
	if model == "" {
		model = p.model
	}

	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, openai.SystemMessage(req.System))
	}
	for _, m := range req.Messages {
		if m.Role == RoleAssistant {
			msgs = append(msgs, openai.AssistantMessage(m.Text))
		} else {
			msgs = append(msgs, openai.UserMessage(m.Text))
		}
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: msgs,
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyContent
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, ErrEmptyContent
	}

	return &Response{
		Text:         text,
		ProviderName: p.name,
		ModelName:    model,
		Usage: &Usage{
			InputTokens:  int(resp.Usage.PromptTokens),
			OutputTokens: int(resp.Usage.CompletionTokens),
			TotalTokens:  int(resp.Usage.TotalTokens),
		},
	}, nil
}

// Name returns provider name
func (p *OpenAIProvider) Name() string {
	return p.name
}

// Model returns model name
func (p *OpenAIProvider) Model() string {
	return p.model
}
