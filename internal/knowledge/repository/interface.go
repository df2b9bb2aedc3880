package repository

import (
	"context"

	"aurax-orchestrator/internal/model"
)

// Repository stores and searches embedded documents.
type Repository interface {
	Search(ctx context.Context, opt SearchOptions) ([]model.ContextDocument, error)
	Upsert(ctx context.Context, docs []Document) (int, error)
	Info(ctx context.Context) (model.KnowledgeInfo, error)
	EnsureCollection(ctx context.Context) (bool, error)
}

// Embedder turns texts into vectors of a fixed dimension.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}

// SearchOptions defines search parameters.
type SearchOptions struct {
	Query          string
	Limit          int
	ScoreThreshold float64
}

// Document is a text with its payload. An empty ID is derived from the text.
type Document struct {
	ID      string
	Text    string
	Payload map[string]any
}
