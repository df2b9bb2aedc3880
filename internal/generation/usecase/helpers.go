package usecase

import (
	"aurax-orchestrator/internal/generation"
	"aurax-orchestrator/internal/model"
	"aurax-orchestrator/internal/router"
	"aurax-orchestrator/pkg/stablediffusion"
)

// routed is the result of the ROUTE state.
type routed struct {
	backend  model.Backend
	decision *router.RouteDecision
	params   map[string]any
	// model is a caller-supplied text model name that is not a known backend.
	model string
}

func newMetadata(backend model.Backend, modelUsed string, docs []model.ContextDocument, decision *router.RouteDecision) map[string]any {
	meta := map[string]any{
		generation.MetaModelUsed:        modelUsed,
		generation.MetaBackend:          string(backend),
		generation.MetaContextDocsCount: len(docs),
	}
	if decision != nil {
		meta[generation.MetaRouting] = *decision
	}
	return meta
}

func succeeded(query string, docs []model.ContextDocument, resp any, kind generation.ResponseKind, meta map[string]any) generation.Outcome {
	return generation.Outcome{
		Success:      true,
		Query:        query,
		Context:      docs,
		Response:     resp,
		ResponseKind: kind,
		Metadata:     meta,
	}
}

func failed(query string, docs []model.ContextDocument, msg string, meta map[string]any) generation.Outcome {
	if docs == nil {
		docs = []model.ContextDocument{}
	}
	return generation.Outcome{
		Success:      false,
		Query:        query,
		Context:      docs,
		ResponseKind: generation.KindError,
		Metadata:     meta,
		Error:        msg,
	}
}

func generationParams(p *stablediffusion.ImagePayload) map[string]any {
	return map[string]any{
		"width":           p.Width,
		"height":          p.Height,
		"steps":           p.Steps,
		"guidance_scale":  p.GuidanceScale,
		"negative_prompt": p.NegativePrompt,
		"seed":            p.Seed,
	}
}

func floatOr(v *float64, params map[string]any, key string, def float64) float64 {
	if v != nil {
		return *v
	}
	return router.FloatParam(params, key, def)
}

func intOr(v int, params map[string]any, key string, def int) int {
	if v > 0 {
		return v
	}
	return router.IntParam(params, key, def)
}
