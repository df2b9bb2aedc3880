package usecase

const (
	LogPrefixGenerate    = "internal.generation.usecase.Generate"
	LogPrefixRetrieve    = "internal.generation.usecase.retrieve"
	LogPrefixAnalyzeCode = "internal.generation.usecase.AnalyzeCode"
	LogPrefixStatus      = "internal.generation.usecase.SystemStatus"
)

// CodeContextThresholdCap bounds the retrieval threshold for code queries.
const CodeContextThresholdCap = 0.3

// Defaults applied when neither the request nor the route sets a value.
const (
	defaultCodeTemperature = 0.3
	defaultWidth           = 512
	defaultHeight          = 512
	defaultSteps           = 30
	defaultGuidanceScale   = 7.5
	defaultAnalyzeQuestion = "Explain what this code does."
)

// Outcome error messages.
const (
	MsgTextUnavailable = "LLM service (Ollama) not available"
	MsgTextFailed      = "failed to generate response from LLM"
	MsgImageFailed     = "failed to generate image"
	MsgInternalError   = "internal error"
)
