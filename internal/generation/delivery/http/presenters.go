package http

import (
	"aurax-orchestrator/internal/generation"
	"aurax-orchestrator/internal/router"
)

const (
	maxTopK      = 20
	maxImageSide = 2048
	maxSteps     = 150
	maxImages    = 4
)

// --- Request DTOs ---

type generateReq struct {
	Query            string         `json:"query"`
	ExplicitModel    string         `json:"explicit_model,omitempty"`
	ContextThreshold *float64       `json:"context_threshold,omitempty"`
	TopK             int            `json:"top_k,omitempty"`
	RoutingMetadata  map[string]any `json:"routing_metadata,omitempty"`
	Width            int            `json:"width,omitempty"`
	Height           int            `json:"height,omitempty"`
	Steps            int            `json:"steps,omitempty"`
	GuidanceScale    float64        `json:"guidance_scale,omitempty"`
	NegativePrompt   string         `json:"negative_prompt,omitempty"`
	Seed             *int64         `json:"seed,omitempty"`
	NumImages        int            `json:"num_images,omitempty"`
	Temperature      *float64       `json:"temperature,omitempty"`
	MaxTokens        int            `json:"max_tokens,omitempty"`
}

func (r generateReq) validate() error {
	if r.ContextThreshold != nil && (*r.ContextThreshold < 0 || *r.ContextThreshold > 1) {
		return errInvalidThreshold
	}
	if r.TopK < 0 || r.TopK > maxTopK {
		return errInvalidTopK
	}
	for _, side := range []int{r.Width, r.Height} {
		if side != 0 && (side < 64 || side > maxImageSide) {
			return errInvalidSize
		}
	}
	if r.Steps < 0 || r.Steps > maxSteps {
		return errInvalidSteps
	}
	if r.NumImages < 0 || r.NumImages > maxImages {
		return errInvalidNumImages
	}
	return nil
}

func (r generateReq) toInput() generation.GenerateInput {
	return generation.GenerateInput{
		Query:            r.Query,
		ExplicitModel:    r.ExplicitModel,
		ContextThreshold: r.ContextThreshold,
		TopK:             r.TopK,
		RoutingMetadata:  r.RoutingMetadata,
		Width:            r.Width,
		Height:           r.Height,
		Steps:            r.Steps,
		GuidanceScale:    r.GuidanceScale,
		NegativePrompt:   r.NegativePrompt,
		Seed:             r.Seed,
		NumImages:        r.NumImages,
		Temperature:      r.Temperature,
		MaxTokens:        r.MaxTokens,
	}
}

type routeReq struct {
	Query    string         `json:"query"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func (r routeReq) toInput() generation.RouteInput {
	return generation.RouteInput{Query: r.Query, Metadata: r.Metadata}
}

type analyzeReq struct {
	Code     string `json:"code" binding:"required"`
	Question string `json:"question"`
}

func (r analyzeReq) toInput() generation.AnalyzeInput {
	return generation.AnalyzeInput{Code: r.Code, Question: r.Question}
}

// --- Response DTOs ---

type routeResp struct {
	Backend    string         `json:"backend"`
	Label      string         `json:"label"`
	Confidence float64        `json:"confidence"`
	Reasoning  string         `json:"reasoning"`
	Parameters map[string]any `json:"parameters"`
}

func (h *handler) newRouteResp(d router.RouteDecision) routeResp {
	return routeResp{
		Backend:    string(d.Backend),
		Label:      d.Backend.Label(),
		Confidence: d.Confidence,
		Reasoning:  d.Reasoning,
		Parameters: d.Parameters,
	}
}
