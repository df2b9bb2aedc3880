package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aurax-orchestrator/internal/generation"
	"aurax-orchestrator/internal/model"
	"aurax-orchestrator/internal/router"
)

// Generate runs ROUTE, RETRIEVE, DISPATCH and the optional code fallback.
func (uc *implUseCase) Generate(ctx context.Context, input generation.GenerateInput) (out generation.Outcome) {
	start := time.Now()
	defer func() {
		if rec := recover(); rec != nil {
			uc.l.Errorf(ctx, "%s: recovered: %v", LogPrefixGenerate, rec)
			out = failed(input.Query, nil, fmt.Sprintf("%s: %v", MsgInternalError, rec),
				newMetadata(model.BackendDefault, "", nil, nil))
		}
		backend, _ := out.Metadata[generation.MetaBackend].(string)
		uc.metrics.ObserveGeneration(model.Backend(backend).Label(), out.Success, time.Since(start))
	}()

	if strings.TrimSpace(input.Query) == "" {
		return failed(input.Query, nil, generation.ErrEmptyQuery.Error(),
			newMetadata(model.BackendDefault, "", nil, nil))
	}

	rt := uc.route(ctx, input)
	uc.l.Infof(ctx, "%s: backend=%s explicit=%t", LogPrefixGenerate, rt.backend, rt.decision == nil)

	switch rt.backend {
	case model.BackendImage:
		return uc.generateImage(ctx, input, rt)
	case model.BackendCode:
		docs := uc.retrieve(ctx, input, rt.backend)
		return uc.generateCodeWithFallback(ctx, input, rt, docs)
	case model.BackendDefault, model.BackendFresh:
		docs := uc.retrieve(ctx, input, rt.backend)
		return uc.generateText(ctx, input, rt, docs)
	}

	docs := uc.retrieve(ctx, input, model.BackendDefault)
	return uc.generateText(ctx, input, rt, docs)
}

// Route returns the classifier decision without generating.
func (uc *implUseCase) Route(ctx context.Context, input generation.RouteInput) router.RouteDecision {
	return uc.router.Classify(ctx, input.Query, input.Metadata)
}

func (uc *implUseCase) route(ctx context.Context, input generation.GenerateInput) routed {
	if name := strings.TrimSpace(input.ExplicitModel); name != "" {
		backend, known := model.ParseBackend(name)
		rt := routed{backend: backend}
		if !known {
			rt.backend = model.BackendDefault
			rt.model = name
		}
		if rt.backend == model.BackendCode && uc.code == nil {
			rt.backend = model.BackendDefault
		}
		rt.params = router.SuggestedParameters(rt.backend)
		return rt
	}

	decision := uc.router.Classify(ctx, input.Query, input.RoutingMetadata)
	backend := decision.Backend
	if backend == model.BackendCode && uc.code == nil {
		backend = model.BackendDefault
	}
	return routed{backend: backend, decision: &decision, params: decision.Parameters}
}

// retrieve is best effort: any failure yields an empty, non-nil context.
func (uc *implUseCase) retrieve(ctx context.Context, input generation.GenerateInput, backend model.Backend) (docs []model.ContextDocument) {
	docs = []model.ContextDocument{}
	if !RequiresContext(backend) || uc.retriever == nil {
		return docs
	}

	threshold := uc.opts.ContextThreshold
	if input.ContextThreshold != nil {
		threshold = *input.ContextThreshold
	}
	threshold = EffectiveThreshold(backend, threshold)

	topK := uc.opts.TopK
	if input.TopK > 0 {
		topK = input.TopK
	}

	defer func() {
		if rec := recover(); rec != nil {
			uc.l.Warnf(ctx, "%s: recovered: %v", LogPrefixRetrieve, rec)
			uc.metrics.ObserveRetrievalFailure()
			docs = []model.ContextDocument{}
		}
	}()

	found, err := uc.retriever.Retrieve(ctx, input.Query, topK, threshold)
	if err != nil {
		uc.l.Warnf(ctx, "%s: continuing without context: %v", LogPrefixRetrieve, err)
		uc.metrics.ObserveRetrievalFailure()
		return docs
	}
	if len(found) > topK {
		found = found[:topK]
	}
	uc.l.Debugf(ctx, "%s: %d documents at threshold %.2f", LogPrefixRetrieve, len(found), threshold)
	return append(docs, found...)
}

func (uc *implUseCase) generateImage(ctx context.Context, input generation.GenerateInput, rt routed) generation.Outcome {
	req := generation.ImageRequest{
		Prompt:         input.Query,
		NegativePrompt: input.NegativePrompt,
		Width:          intOr(input.Width, rt.params, "width", defaultWidth),
		Height:         intOr(input.Height, rt.params, "height", defaultHeight),
		Steps:          intOr(input.Steps, rt.params, "steps", defaultSteps),
		Seed:           input.Seed,
	}
	req.GuidanceScale = router.FloatParam(rt.params, "guidance_scale", defaultGuidanceScale)
	if input.GuidanceScale > 0 {
		req.GuidanceScale = input.GuidanceScale
	}

	meta := newMetadata(model.BackendImage, string(model.BackendImage), nil, rt.decision)
	if uc.image == nil {
		uc.l.Warnf(ctx, "%s: image backend disabled", LogPrefixGenerate)
		return failed(input.Query, nil, MsgImageFailed, meta)
	}

	if input.NumImages > 1 {
		return uc.generateImageVariations(ctx, input, req, meta)
	}

	payload, err := uc.image.GenerateImage(ctx, req)
	if err != nil || payload == nil {
		uc.l.Errorf(ctx, "%s: image generation failed: %v", LogPrefixGenerate, err)
		return failed(input.Query, nil, MsgImageFailed, meta)
	}

	if payload.Model != "" {
		meta[generation.MetaModelUsed] = payload.Model
	}
	meta[generation.MetaGenerationParams] = generationParams(payload)
	return succeeded(input.Query, []model.ContextDocument{}, payload, generation.KindImage, meta)
}

// generateImageVariations renders input.NumImages images. Partial results
// count as success; the params recorded are those of the first image.
func (uc *implUseCase) generateImageVariations(ctx context.Context, input generation.GenerateInput, req generation.ImageRequest, meta map[string]any) generation.Outcome {
	variator, ok := uc.image.(generation.ImageVariator)
	if !ok {
		uc.l.Warnf(ctx, "%s: image backend cannot render variations", LogPrefixGenerate)
		return failed(input.Query, nil, MsgImageFailed, meta)
	}

	payloads, err := variator.GenerateImages(ctx, req, input.NumImages)
	if err != nil || len(payloads) == 0 {
		uc.l.Errorf(ctx, "%s: image variations failed: %v", LogPrefixGenerate, err)
		return failed(input.Query, nil, MsgImageFailed, meta)
	}

	if payloads[0].Model != "" {
		meta[generation.MetaModelUsed] = payloads[0].Model
	}
	meta[generation.MetaNumImages] = len(payloads)
	meta[generation.MetaGenerationParams] = generationParams(payloads[0])
	return succeeded(input.Query, []model.ContextDocument{}, payloads, generation.KindImage, meta)
}

func (uc *implUseCase) generateCodeWithFallback(ctx context.Context, input generation.GenerateInput, rt routed, docs []model.ContextDocument) generation.Outcome {
	primary := func(ctx context.Context) (generation.Outcome, error) {
		return uc.generateCode(ctx, input, rt, docs)
	}
	secondary := func(ctx context.Context) (generation.Outcome, error) {
		textRoute := routed{
			backend:  model.BackendCode,
			decision: rt.decision,
			params:   router.SuggestedParameters(model.BackendDefault),
		}
		out := uc.generateText(ctx, input, textRoute, docs)
		out.Metadata[generation.MetaFallbackFrom] = string(model.BackendCode)
		return out, nil
	}
	onFallback := func(err error) {
		uc.l.Warnf(ctx, "%s: code backend failed, falling back to default: %v", LogPrefixGenerate, err)
		uc.metrics.ObserveFallback(model.BackendCode.Label(), model.BackendDefault.Label())
	}

	out, _ := Fallback(primary, secondary, onFallback)(ctx)
	return out
}

func (uc *implUseCase) generateCode(ctx context.Context, input generation.GenerateInput, rt routed, docs []model.ContextDocument) (generation.Outcome, error) {
	temperature := floatOr(input.Temperature, rt.params, "temperature", defaultCodeTemperature)

	code, err := uc.code.GenerateCode(ctx, generation.CodeRequest{
		Prompt:      input.Query,
		Context:     FormatCodeContext(docs),
		Temperature: &temperature,
		MaxTokens:   input.MaxTokens,
	})
	if err != nil {
		return generation.Outcome{}, fmt.Errorf("code backend: %w", err)
	}
	if strings.TrimSpace(code) == "" {
		return generation.Outcome{}, generation.ErrNoOutput
	}

	meta := newMetadata(model.BackendCode, uc.code.Model(), docs, rt.decision)
	return succeeded(input.Query, docs, code, generation.KindCode, meta), nil
}

// generateText is the backend of last resort; it never falls back further.
// rt.backend only selects the prompt framing; the metadata records DEFAULT
// unless the route was FRESH.
func (uc *implUseCase) generateText(ctx context.Context, input generation.GenerateInput, rt routed, docs []model.ContextDocument) generation.Outcome {
	prompt := FormatPrompt(input.Query, docs, rt.backend)

	used := model.BackendDefault
	if rt.backend == model.BackendFresh {
		used = model.BackendFresh
	}
	modelUsed := rt.model
	if modelUsed == "" {
		modelUsed = uc.text.DefaultModel()
	}
	meta := newMetadata(used, modelUsed, docs, rt.decision)

	if !uc.text.Available(ctx) {
		uc.l.Warnf(ctx, "%s: text backend unavailable", LogPrefixGenerate)
		return failed(input.Query, docs, MsgTextUnavailable, meta)
	}

	temperature := floatOr(input.Temperature, rt.params, "temperature", 0)
	req := generation.TextRequest{
		Prompt:    prompt,
		Model:     rt.model,
		MaxTokens: intOr(input.MaxTokens, rt.params, "max_tokens", 0),
	}
	if temperature > 0 {
		req.Temperature = &temperature
	}

	res, err := uc.text.Generate(ctx, req)
	if err != nil || strings.TrimSpace(res.Text) == "" {
		uc.l.Errorf(ctx, "%s: text generation failed: %v", LogPrefixGenerate, err)
		return failed(input.Query, docs, MsgTextFailed, meta)
	}

	if res.Model != "" {
		meta[generation.MetaModelUsed] = res.Model
	}
	if res.Provider != "" {
		meta[generation.MetaProvider] = res.Provider
	}
	meta[generation.MetaPromptLength] = len(prompt)
	return succeeded(input.Query, docs, res.Text, generation.KindText, meta)
}
