// Package genai embeds text with Google's Gemini embedding models.
package genai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const (
	DefaultModel      = "gemini-embedding-001"
	DefaultDimensions = 768
)

var ErrNoInput = errors.New("genai: at least one text is required")

// Embedder generates embeddings through the Gemini API.
type Embedder struct {
	client     *genai.Client
	model      string
	taskType   genai.TaskType
	dimensions int
}

// New creates an Embedder that tags inputs as retrieval documents.
func New(ctx context.Context, apiKey, model string) (*Embedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("genai API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Embedder{
		client:     client,
		model:      model,
		taskType:   genai.TaskTypeRetrievalDocument,
		dimensions: DefaultDimensions,
	}, nil
}

// ForQueries returns a copy that tags inputs as retrieval queries.
func (e *Embedder) ForQueries() *Embedder {
	cp := *e
	cp.taskType = genai.TaskTypeRetrievalQuery
	return &cp
}

// Dimensions returns the vector size produced by the model.
func (e *Embedder) Dimensions() int {
	return e.dimensions
}

// Embed generates one embedding per input text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, ErrNoInput
	}

	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentRequest{
		TaskType: e.taskType,
	})
	if err != nil {
		return nil, fmt.Errorf("genai embed failed: %w", err)
	}
	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("genai: expected %d embeddings, got %d", len(texts), len(result.Embeddings))
	}

	out := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		out[i] = emb.Values
	}
	return out, nil
}
