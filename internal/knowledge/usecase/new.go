package usecase

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tmc/langchaingo/textsplitter"

	"aurax-orchestrator/internal/knowledge"
	"aurax-orchestrator/internal/knowledge/repository"
	pkgLog "aurax-orchestrator/pkg/log"
)

// Options configures chunking and page fetching.
type Options struct {
	ChunkSize    int
	ChunkOverlap int
	MinChunkSize int
	FetchTimeout time.Duration
	UserAgent    string
	Workers      int
	// MaxBodyBytes caps a fetched page; reading stops once it is exceeded.
	MaxBodyBytes int
}

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	http     *resty.Client
	splitter textsplitter.RecursiveCharacter
	opts     Options
	now      func() time.Time
}

var _ knowledge.UseCase = (*implUseCase)(nil)

// New creates the knowledge usecase.
func New(l pkgLog.Logger, repo repository.Repository, opts Options) *implUseCase {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.ChunkOverlap < 0 || opts.ChunkOverlap >= opts.ChunkSize {
		opts.ChunkOverlap = DefaultChunkOverlap
	}
	if opts.MinChunkSize <= 0 {
		opts.MinChunkSize = DefaultMinChunkSize
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultIngestWorkers
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	client := resty.New().
		SetTimeout(opts.FetchTimeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)).
		SetResponseBodyLimit(opts.MaxBodyBytes)

	return &implUseCase{
		l:    l,
		repo: repo,
		http: client,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(opts.ChunkSize),
			textsplitter.WithChunkOverlap(opts.ChunkOverlap),
			textsplitter.WithSeparators([]string{"\n\n", "\n", ". ", "? ", "! ", " ", ""}),
		),
		opts: opts,
		now:  time.Now,
	}
}
