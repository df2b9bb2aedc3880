package generation

import (
	"context"

	"aurax-orchestrator/internal/model"
	"aurax-orchestrator/internal/router"
	"aurax-orchestrator/pkg/stablediffusion"
)

// UseCase is the generation entry point exposed to delivery layers.
type UseCase interface {
	// Generate routes, retrieves, dispatches and shapes a single request.
	// It never returns an error: every failure is reported in the Outcome.
	Generate(ctx context.Context, input GenerateInput) Outcome

	// Route returns the classifier decision without generating.
	Route(ctx context.Context, input RouteInput) router.RouteDecision

	// AnalyzeCode asks the code backend to review a snippet.
	AnalyzeCode(ctx context.Context, input AnalyzeInput) (AnalyzeOutput, error)

	// SystemStatus checks every collaborator.
	SystemStatus(ctx context.Context) SystemStatus
}

// Retriever returns context documents ranked by relevance, highest first.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int, scoreThreshold float64) ([]model.ContextDocument, error)
}

// TextBackend is the general text generation backend of last resort.
type TextBackend interface {
	Generate(ctx context.Context, req TextRequest) (TextResult, error)
	Available(ctx context.Context) bool
	DefaultModel() string
}

// CodeBackend is the code-specialized backend.
type CodeBackend interface {
	GenerateCode(ctx context.Context, req CodeRequest) (string, error)
	Model() string
}

// ImageBackend renders images.
type ImageBackend interface {
	GenerateImage(ctx context.Context, req ImageRequest) (*stablediffusion.ImagePayload, error)
}

// ImageVariator is implemented by image backends that can render several
// variations of one request.
type ImageVariator interface {
	GenerateImages(ctx context.Context, req ImageRequest, n int) ([]*stablediffusion.ImagePayload, error)
}

// CodeAnalyzer is implemented by code backends that can review code.
type CodeAnalyzer interface {
	AnalyzeCode(ctx context.Context, code, question string) (string, error)
}

// ModelLister is implemented by text backends that can enumerate models.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// KnowledgeInspector is implemented by retrievers that can describe their store.
type KnowledgeInspector interface {
	Info(ctx context.Context) (model.KnowledgeInfo, error)
}

// AvailabilityChecker reports whether a collaborator is reachable.
type AvailabilityChecker interface {
	Available(ctx context.Context) bool
}

// CheckpointReporter names the model an image server currently has loaded.
type CheckpointReporter interface {
	CurrentModel(ctx context.Context) (string, error)
}
