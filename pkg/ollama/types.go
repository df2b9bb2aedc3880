package ollama

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Model   string  `json:"model"`
	Prompt  string  `json:"prompt"`
	System  string  `json:"system,omitempty"`
	Stream  bool    `json:"stream"`
	Options Options `json:"options"`
}

// Options are the sampling options understood by the Ollama runtime.
type Options struct {
	NumPredict  int      `json:"num_predict,omitempty"`
	Temperature float64  `json:"temperature"`
	TopP        float64  `json:"top_p,omitempty"`
	Stop        []string `json:"stop,omitempty"`
}

// GenerateResult is the subset of the /api/generate response we use.
type GenerateResult struct {
	Text            string
	Model           string
	PromptEvalCount int
	EvalCount       int
}

// ModelInfo is one entry of GET /api/tags.
type ModelInfo struct {
	Name       string `json:"name"`
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modified_at"`
}

type pullRequest struct {
	Name   string `json:"name"`
	Stream bool   `json:"stream"`
}
