package usecase

import "time"

const (
	logPrefixIngest   = "internal.knowledge.usecase.Ingest"
	logPrefixAdd      = "internal.knowledge.usecase.AddDocuments"
	logPrefixRetrieve = "internal.knowledge.usecase.Retrieve"
)

const (
	DefaultChunkSize     = 800
	DefaultChunkOverlap  = 100
	DefaultMinChunkSize  = 100
	DefaultFetchTimeout  = 30 * time.Second
	DefaultUserAgent     = "aurax-orchestrator/1.0"
	DefaultIngestWorkers = 3
	DefaultMaxBodyBytes  = 5 << 20

	minChunkWords  = 10
	minAlnumRatio  = 0.7
	minUniqueRatio = 0.3
	maxTopics      = 10
)

// Payload keys written for every stored chunk.
const (
	MetaSource        = "source"
	MetaSourceURL     = "source_url"
	MetaTitle         = "title"
	MetaChunkIndex    = "chunk_index"
	MetaChunkLength   = "chunk_length"
	MetaWordCount     = "word_count"
	MetaSentenceCount = "sentence_count"
	MetaContentType   = "content_type"
	MetaTopics        = "topics"
	MetaIngestedAt    = "ingested_at"
)

// Content types detected per chunk.
const (
	ContentCode     = "code"
	ContentTutorial = "tutorial"
	ContentQA       = "qa"
	ContentGeneral  = "general"
)
