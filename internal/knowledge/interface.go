package knowledge

import (
	"context"

	"aurax-orchestrator/internal/model"
)

// UseCase manages the knowledge base used for retrieval.
type UseCase interface {
	// Retrieve returns documents ranked by relevance, highest first.
	Retrieve(ctx context.Context, query string, topK int, scoreThreshold float64) ([]model.ContextDocument, error)

	// AddDocuments embeds and stores documents as-is.
	AddDocuments(ctx context.Context, docs []DocumentInput) (AddOutput, error)

	// IngestText cleans, chunks and stores a raw text.
	IngestText(ctx context.Context, input IngestTextInput) (IngestResult, error)

	// IngestURL fetches a page and ingests its content.
	IngestURL(ctx context.Context, url string) (IngestResult, error)

	// IngestURLs ingests several pages; per-URL failures are reported, not returned.
	IngestURLs(ctx context.Context, urls []string) IngestURLsOutput

	// Info describes the backing collection.
	Info(ctx context.Context) (model.KnowledgeInfo, error)

	// EnsureCollection creates the collection when missing.
	EnsureCollection(ctx context.Context) (bool, error)
}
