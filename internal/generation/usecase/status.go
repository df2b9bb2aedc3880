package usecase

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"aurax-orchestrator/internal/generation"
	"aurax-orchestrator/pkg/response"
)

// SystemStatus checks the text, knowledge and image collaborators concurrently.
// Check failures are reported in the status, never returned.
func (uc *implUseCase) SystemStatus(ctx context.Context) generation.SystemStatus {
	var (
		g      errgroup.Group
		status generation.SystemStatus
	)
	status.Components.LLM.DefaultModel = uc.text.DefaultModel()
	status.Components.LLM.AvailableModels = []string{}
	status.Components.Image.Enabled = uc.opts.ImageEnabled && uc.image != nil

	g.Go(func() error {
		llm := &status.Components.LLM
		llm.Available = uc.text.Available(ctx)
		lister, ok := uc.text.(generation.ModelLister)
		if !llm.Available || !ok {
			return nil
		}
		models, err := lister.ListModels(ctx)
		if err != nil {
			llm.Error = err.Error()
			return nil
		}
		llm.AvailableModels = models
		return nil
	})

	g.Go(func() error {
		rag := &status.Components.RAG
		inspector, ok := uc.retriever.(generation.KnowledgeInspector)
		if uc.retriever == nil || !ok {
			return nil
		}
		info, err := inspector.Info(ctx)
		if err != nil {
			uc.l.Warnf(ctx, "%s: knowledge info: %v", LogPrefixStatus, err)
			rag.Error = err.Error()
			return nil
		}
		rag.Available = true
		rag.KnowledgeBase = &info
		return nil
	})

	if status.Components.Image.Enabled {
		g.Go(func() error {
			img := &status.Components.Image
			if p, ok := uc.image.(generation.AvailabilityChecker); ok {
				img.Available = p.Available(ctx)
			} else {
				img.Available = true
			}
			reporter, ok := uc.image.(generation.CheckpointReporter)
			if !img.Available || !ok {
				return nil
			}
			name, err := reporter.CurrentModel(ctx)
			if err != nil {
				uc.l.Warnf(ctx, "%s: image checkpoint: %v", LogPrefixStatus, err)
				img.Error = err.Error()
				return nil
			}
			img.Model = name
			return nil
		})
	}

	_ = g.Wait()

	status.Healthy = status.Components.LLM.Available
	status.CheckedAt = response.DateTime(time.Now())
	return status
}
