package voyage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL    = "https://api.voyageai.com/v1"
	DefaultModel      = "voyage-3"
	DefaultDimensions = 1024

	InputTypeQuery    = "query"
	InputTypeDocument = "document"
)

var ErrNoInput = errors.New("voyage: at least one text is required")

// Client is the Voyage AI embedding API client.
type Client struct {
	http       *resty.Client
	model      string
	inputType  string
	dimensions int
}

// New creates a new Voyage AI client.
func New(apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("voyage API key is required")
	}

	return &Client{
		http: resty.New().
			SetBaseURL(DefaultBaseURL).
			SetTimeout(60*time.Second).
			SetAuthToken(apiKey).
			SetHeader("Content-Type", "application/json"),
		model:      DefaultModel,
		dimensions: DefaultDimensions,
	}, nil
}

// WithModel sets a custom model (e.g., "voyage-3", "voyage-large-2").
func (c *Client) WithModel(model string) *Client {
	if model != "" {
		c.model = model
	}
	return c
}

// WithBaseURL overrides the default Voyage API base URL.
func (c *Client) WithBaseURL(baseURL string) *Client {
	if baseURL != "" {
		c.http.SetBaseURL(strings.TrimRight(baseURL, "/"))
	}
	return c
}

// WithDimensions overrides the vector size reported by Dimensions.
func (c *Client) WithDimensions(n int) *Client {
	if n > 0 {
		c.dimensions = n
	}
	return c
}

// ForQueries returns a copy of the client that tags inputs as search queries.
func (c *Client) ForQueries() *Client {
	cp := *c
	cp.inputType = InputTypeQuery
	return &cp
}

// ForDocuments returns a copy of the client that tags inputs as documents.
func (c *Client) ForDocuments() *Client {
	cp := *c
	cp.inputType = InputTypeDocument
	return &cp
}

// Dimensions returns the embedding vector size of the configured model.
func (c *Client) Dimensions() int {
	return c.dimensions
}

// Embed generates embeddings for the given texts, in input order.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrNoInput
	}

	var (
		out     EmbedResponse
		errResp ErrorResponse
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(EmbedRequest{Input: texts, Model: c.model, InputType: c.inputType}).
		SetResult(&out).
		SetError(&errResp).
		Post("/embeddings")
	if err != nil {
		return nil, fmt.Errorf("failed to call Voyage API: %w", err)
	}
	if resp.IsError() {
		if msg := errResp.message(); msg != "" {
			return nil, fmt.Errorf("voyage API error (%d): %s", resp.StatusCode(), msg)
		}
		return nil, fmt.Errorf("voyage API error: %d", resp.StatusCode())
	}

	embeddings := make([][]float32, len(texts))
	for _, data := range out.Data {
		if data.Index >= 0 && data.Index < len(embeddings) {
			embeddings[data.Index] = data.Embedding
		}
	}
	for i, e := range embeddings {
		if e == nil {
			return nil, fmt.Errorf("voyage: missing embedding for input %d", i)
		}
	}

	return embeddings, nil
}
