package usecase

import (
	"aurax-orchestrator/internal/generation"
	"aurax-orchestrator/internal/router"
	pkgLog "aurax-orchestrator/pkg/log"
	"aurax-orchestrator/pkg/metrics"
)

// Options carries orchestration defaults.
type Options struct {
	TopK             int
	ContextThreshold float64
	ImageEnabled     bool
}

type implUseCase struct {
	l         pkgLog.Logger
	router    router.Router
	retriever generation.Retriever
	text      generation.TextBackend
	code      generation.CodeBackend
	image     generation.ImageBackend
	metrics   *metrics.Metrics
	opts      Options
}

var _ generation.UseCase = (*implUseCase)(nil)

// New creates the generation UseCase. retriever, code and image may be nil:
// a nil retriever yields empty context, a nil code backend sends code
// queries straight to the text backend and a nil image backend fails image
// requests.
func New(
	l pkgLog.Logger,
	r router.Router,
	retriever generation.Retriever,
	text generation.TextBackend,
	code generation.CodeBackend,
	image generation.ImageBackend,
	m *metrics.Metrics,
	opts Options,
) *implUseCase {
	if opts.TopK <= 0 {
		opts.TopK = generation.DefaultTopK
	}
	if opts.ContextThreshold <= 0 {
		opts.ContextThreshold = generation.DefaultContextThreshold
	}
	if image != nil {
		opts.ImageEnabled = true
	}

	return &implUseCase{
		l:         l,
		router:    r,
		retriever: retriever,
		text:      text,
		code:      code,
		image:     image,
		metrics:   m,
		opts:      opts,
	}
}
