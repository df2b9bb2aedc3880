package ollama

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL     = "http://localhost:11434"
	DefaultModel       = "mistral:7b"
	DefaultTimeout     = 120 * time.Second
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.7

	availabilityTimeout = 10 * time.Second
	pullTimeout         = 5 * time.Minute
)

// DefaultStop ends a completion at a blank line or a role marker.
var DefaultStop = []string{"\n\n", "Human:", "Assistant:"}

// Config configures a Client.
type Config struct {
	BaseURL     string
	Model       string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
}

// Client talks to a local Ollama runtime over its REST API.
type Client struct {
	http        *resty.Client
	model       string
	maxTokens   int
	temperature float64
}

// New creates an Ollama client. Empty config fields use package defaults.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}

	hc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:        hc,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}
}

// Model returns the default model name.
func (c *Client) Model() string {
	return c.model
}

// IsAvailable reports whether the runtime answers GET /api/tags.
func (c *Client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, availabilityTimeout)
	defer cancel()

	resp, err := c.http.R().SetContext(ctx).Get("/api/tags")
	if err != nil {
		return false
	}
	return resp.StatusCode() == http.StatusOK
}

// ListModels returns the models installed in the runtime.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	resp, err := c.http.R().SetContext(ctx).Get("/api/tags")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var models []ModelInfo
	gjson.GetBytes(resp.Body(), "models").ForEach(func(_, m gjson.Result) bool {
		models = append(models, ModelInfo{
			Name:       m.Get("name").String(),
			Size:       m.Get("size").Int(),
			ModifiedAt: m.Get("modified_at").String(),
		})
		return true
	})
	return models, nil
}

// HasModel reports whether the named model is installed. A name without a
// tag also matches any tagged variant of it.
func (c *Client) HasModel(ctx context.Context, name string) (bool, error) {
	models, err := c.ListModels(ctx)
	if err != nil {
		return false, err
	}
	for _, m := range models {
		if m.Name == name || strings.HasPrefix(m.Name, name+":") {
			return true, nil
		}
	}
	return false, nil
}

// Generate runs a non-streaming completion. Zero request options fall back
// to the client defaults; an empty model uses the client's default model.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if req.Model == "" {
		req.Model = c.model
	}
	if req.Options.NumPredict <= 0 {
		req.Options.NumPredict = c.maxTokens
	}
	if req.Options.Temperature <= 0 {
		req.Options.Temperature = c.temperature
	}
	if req.Options.Stop == nil {
		req.Options.Stop = DefaultStop
	}
	req.Stream = false

	resp, err := c.http.R().SetContext(ctx).SetBody(req).Post("/api/generate")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return nil, &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	body := resp.Body()
	text := strings.TrimSpace(gjson.GetBytes(body, "response").String())
	if text == "" {
		return nil, ErrEmptyResponse
	}

	return &GenerateResult{
		Text:            text,
		Model:           req.Model,
		PromptEvalCount: int(gjson.GetBytes(body, "prompt_eval_count").Int()),
		EvalCount:       int(gjson.GetBytes(body, "eval_count").Int()),
	}, nil
}

// PullModel downloads a model into the runtime and waits for completion.
func (c *Client) PullModel(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, pullTimeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(pullRequest{Name: name, Stream: false}).
		Post("/api/pull")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return &APIError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
