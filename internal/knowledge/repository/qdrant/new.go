package qdrant

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"aurax-orchestrator/internal/knowledge/repository"
	pkgLog "aurax-orchestrator/pkg/log"
	pkgQdrant "aurax-orchestrator/pkg/qdrant"
)

const (
	DefaultDistance  = "Cosine"
	DefaultCacheSize = 1000
	DefaultCacheTTL  = time.Hour

	logPrefix = "internal.knowledge.repository.qdrant"
)

// Options configures the repository.
type Options struct {
	CollectionName string
	Distance       string
	CacheSize      int
	CacheTTL       time.Duration
}

type implRepository struct {
	client     *pkgQdrant.Client
	docs       repository.Embedder
	queries    repository.Embedder
	collection string
	distance   string
	cache      *expirable.LRU[string, []float32]
	l          pkgLog.Logger
}

var _ repository.Repository = (*implRepository)(nil)

// New creates a Qdrant-backed repository. docs embeds stored documents and
// queries embeds search queries; both must produce the same dimension.
// Query vectors are cached by text.
func New(l pkgLog.Logger, client *pkgQdrant.Client, docs, queries repository.Embedder, opts Options) *implRepository {
	if opts.Distance == "" {
		opts.Distance = DefaultDistance
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if queries == nil {
		queries = docs
	}

	return &implRepository{
		client:     client,
		docs:       docs,
		queries:    queries,
		collection: opts.CollectionName,
		distance:   opts.Distance,
		cache:      expirable.NewLRU[string, []float32](opts.CacheSize, nil, opts.CacheTTL),
		l:          l,
	}
}
