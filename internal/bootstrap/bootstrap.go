// Package bootstrap assembles the service components from configuration.
// Both the API server and the CLI share it.
package bootstrap

import (
	"context"
	"fmt"

	"aurax-orchestrator/config"
	"aurax-orchestrator/internal/generation"
	"aurax-orchestrator/internal/generation/backend"
	generationUC "aurax-orchestrator/internal/generation/usecase"
	"aurax-orchestrator/internal/knowledge"
	"aurax-orchestrator/internal/knowledge/repository"
	knowledgeRepo "aurax-orchestrator/internal/knowledge/repository/qdrant"
	knowledgeUC "aurax-orchestrator/internal/knowledge/usecase"
	"aurax-orchestrator/internal/router"
	pkgGenAI "aurax-orchestrator/pkg/genai"
	"aurax-orchestrator/pkg/llmprovider"
	"aurax-orchestrator/pkg/log"
	"aurax-orchestrator/pkg/metrics"
	"aurax-orchestrator/pkg/ollama"
	"aurax-orchestrator/pkg/qdrant"
	"aurax-orchestrator/pkg/stablediffusion"
	"aurax-orchestrator/pkg/voyage"
)

// Components are the wired service parts.
type Components struct {
	Metrics    *metrics.Metrics
	Router     *router.RuleClassifier
	Text       *backend.Text
	Generation generation.UseCase
	// Knowledge is nil when no embedding provider is configured.
	Knowledge knowledge.UseCase
}

// Build wires every component. Optional parts (knowledge base, image
// backend) are skipped with a warning when not configured.
func Build(ctx context.Context, cfg *config.Config, l log.Logger) (*Components, error) {
	m := metrics.New()

	// Text backend: local Ollama first, cloud providers as fallback
	local := ollama.New(ollama.Config{
		BaseURL:     cfg.Ollama.URL,
		Model:       cfg.Ollama.Model,
		Timeout:     cfg.Ollama.Timeout,
		MaxTokens:   cfg.Ollama.MaxTokens,
		Temperature: cfg.Ollama.Temperature,
	})
	providers, err := llmprovider.InitializeProviders(local, &cfg.LLM, l)
	if err != nil {
		return nil, fmt.Errorf("initialize llm providers: %w", err)
	}
	manager, err := llmprovider.NewManagerFromConfig(providers, &cfg.LLM, l)
	if err != nil {
		return nil, fmt.Errorf("create llm manager: %w", err)
	}
	text := backend.NewText(manager, local)

	// Code backend shares the Ollama runtime with a coder model
	coderClient := ollama.New(ollama.Config{
		BaseURL: cfg.Ollama.URL,
		Model:   cfg.Coder.Model,
		Timeout: cfg.Coder.Timeout,
	})
	code := backend.NewCode(l, coderClient, backend.CodeConfig{
		Model:       cfg.Coder.Model,
		Temperature: cfg.Coder.Temperature,
		MaxTokens:   cfg.Coder.MaxTokens,
		AutoPull:    cfg.Coder.AutoPull,
		Resilience: backend.ResilienceConfig{
			Timeout:                     cfg.Coder.Timeout,
			ErrorPercentThresholdToOpen: int(cfg.Coder.BreakerPercent),
		},
	})

	var image generation.ImageBackend
	if cfg.StableDiffusion.Enabled {
		sd := stablediffusion.New(cfg.StableDiffusion.URL, cfg.StableDiffusion.Model, cfg.StableDiffusion.Timeout)
		image = backend.NewImage(l, sd, backend.ResilienceConfig{Timeout: cfg.StableDiffusion.Timeout})
	} else {
		l.Warn(ctx, "Stable Diffusion disabled, image requests will fail")
	}

	var (
		kb        knowledge.UseCase
		retriever generation.Retriever
	)
	docs, queries, err := embedders(ctx, cfg)
	if err != nil {
		l.Warnf(ctx, "Knowledge base disabled: %v", err)
	} else {
		client := qdrant.NewClient(cfg.Qdrant.URL)
		if cfg.Qdrant.APIKey != "" {
			client = client.WithAPIKey(cfg.Qdrant.APIKey)
		}
		repo := knowledgeRepo.New(l, client, docs, queries, knowledgeRepo.Options{
			CollectionName: cfg.Qdrant.CollectionName,
			Distance:       cfg.Qdrant.Distance,
			CacheSize:      cfg.Embedding.CacheSize,
			CacheTTL:       cfg.Embedding.CacheTTL,
		})
		uc := knowledgeUC.New(l, repo, knowledgeUC.Options{
			ChunkSize:    cfg.Knowledge.ChunkSize,
			ChunkOverlap: cfg.Knowledge.ChunkOverlap,
			FetchTimeout: cfg.Knowledge.FetchTimeout,
			UserAgent:    cfg.Knowledge.UserAgent,
			MaxBodyBytes: cfg.Knowledge.MaxBodyBytes,
		})
		kb, retriever = uc, uc
	}

	r := router.New(l, router.Thresholds{
		MinConfidence: cfg.Router.MinConfidence,
		CodeScale:     cfg.Router.CodeScale,
		ImageScale:    cfg.Router.ImageScale,
		FreshScale:    cfg.Router.FreshScale,
		CodeBoost:     cfg.Router.CodeBoost,
		ImageBoost:    cfg.Router.ImageBoost,
	}, m)

	gen := generationUC.New(l, r, retriever, text, code, image, m, generationUC.Options{
		TopK:             cfg.Generation.TopK,
		ContextThreshold: cfg.Generation.ContextThreshold,
	})

	return &Components{
		Metrics:    m,
		Router:     r,
		Text:       text,
		Generation: gen,
		Knowledge:  kb,
	}, nil
}

// embedders returns the document and query embedders for the configured provider.
func embedders(ctx context.Context, cfg *config.Config) (repository.Embedder, repository.Embedder, error) {
	switch cfg.Embedding.Provider {
	case "genai":
		e, err := pkgGenAI.New(ctx, cfg.GenAI.APIKey, cfg.GenAI.Model)
		if err != nil {
			return nil, nil, err
		}
		return e, e.ForQueries(), nil
	default:
		c, err := voyage.New(cfg.Voyage.APIKey)
		if err != nil {
			return nil, nil, err
		}
		c = c.WithModel(cfg.Voyage.Model).WithBaseURL(cfg.Voyage.BaseURL).WithDimensions(cfg.Qdrant.VectorSize)
		return c.ForDocuments(), c.ForQueries(), nil
	}
}
