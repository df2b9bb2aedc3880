package generation

import (
	"aurax-orchestrator/internal/model"
	"aurax-orchestrator/pkg/response"
)

// Orchestration defaults.
const (
	DefaultTopK             = 3
	DefaultContextThreshold = 0.5
)

// ResponseKind tags the shape of Outcome.Response.
type ResponseKind string

const (
	KindText  ResponseKind = "text"
	KindCode  ResponseKind = "code"
	KindImage ResponseKind = "image"
	KindError ResponseKind = "error"
)

// Metadata keys set on every Outcome.
const (
	MetaModelUsed        = "model_used"
	MetaBackend          = "backend"
	MetaContextDocsCount = "context_docs_count"
	MetaRouting          = "routing"
	MetaPromptLength     = "prompt_length"
	MetaFallbackFrom     = "fallback_from"
	MetaGenerationParams = "generation_params"
	MetaProvider         = "provider"
	MetaNumImages        = "num_images"
)

// GenerateInput is one generation request. Zero values mean "not set".
type GenerateInput struct {
	Query            string
	ExplicitModel    string
	ContextThreshold *float64
	TopK             int
	RoutingMetadata  map[string]any

	// Image overrides.
	Width          int
	Height         int
	Steps          int
	GuidanceScale  float64
	NegativePrompt string
	Seed           *int64
	// NumImages above 1 renders that many variations; Response is then a
	// []*stablediffusion.ImagePayload.
	NumImages int

	// Text and code overrides.
	Temperature *float64
	MaxTokens   int
}

// Outcome is the terminal result of Generate.
// Response is nil iff Success is false.
type Outcome struct {
	Success      bool                    `json:"success"`
	Query        string                  `json:"query"`
	Context      []model.ContextDocument `json:"context"`
	Response     any                     `json:"response"`
	ResponseKind ResponseKind            `json:"response_type"`
	Metadata     map[string]any          `json:"metadata"`
	Error        string                  `json:"error,omitempty"`
}

// TextRequest is sent to the TextBackend.
type TextRequest struct {
	Prompt      string
	Model       string
	Temperature *float64
	MaxTokens   int
}

// TextResult is what the TextBackend produced and which model served it.
type TextResult struct {
	Text     string
	Model    string
	Provider string
}

// CodeRequest is sent to the CodeBackend. Context is the plain joined text
// of the retrieved documents.
type CodeRequest struct {
	Prompt      string
	Context     string
	Temperature *float64
	MaxTokens   int
}

// ImageRequest is sent to the ImageBackend.
type ImageRequest struct {
	Prompt         string
	NegativePrompt string
	Width          int
	Height         int
	Steps          int
	GuidanceScale  float64
	Seed           *int64
}

// RouteInput is the diagnostic routing request.
type RouteInput struct {
	Query    string
	Metadata map[string]any
}

// AnalyzeInput asks a question about a code snippet.
type AnalyzeInput struct {
	Code     string
	Question string
}

// AnalyzeOutput is the code review answer.
type AnalyzeOutput struct {
	Analysis string `json:"analysis"`
	Model    string `json:"model"`
}

// SystemStatus reports collaborator health.
type SystemStatus struct {
	Healthy    bool              `json:"healthy"`
	CheckedAt  response.DateTime `json:"checked_at"`
	Components Components        `json:"components"`
}

// Components groups per-collaborator status.
type Components struct {
	LLM   LLMStatus   `json:"llm"`
	RAG   RAGStatus   `json:"rag"`
	Image ImageStatus `json:"image"`
}

type LLMStatus struct {
	Available       bool     `json:"available"`
	DefaultModel    string   `json:"default_model"`
	AvailableModels []string `json:"available_models"`
	Error           string   `json:"error,omitempty"`
}

type RAGStatus struct {
	Available     bool                 `json:"available"`
	KnowledgeBase *model.KnowledgeInfo `json:"knowledge_base"`
	Error         string               `json:"error,omitempty"`
}

type ImageStatus struct {
	Enabled   bool   `json:"enabled"`
	Available bool   `json:"available"`
	Model     string `json:"model,omitempty"`
	Error     string `json:"error,omitempty"`
}
