package router

// Log prefixes
const (
	LogPrefixClassify = "internal.router.Classify"
)

// Scoring defaults
const (
	DefaultMinConfidence = 0.4
	DefaultCodeScale     = 2.0
	DefaultImageScale    = 3.0
	DefaultFreshScale    = 2.5
	DefaultCodeBoost     = 0.3
	DefaultImageBoost    = 0.4

	// DefaultCandidateConfidence is the fixed score of the DEFAULT candidate
	// and the confidence reported when the gate or a failure forces DEFAULT.
	DefaultCandidateConfidence = 0.5

	// ExplicitConfidence is reported for empty queries and explicit requests.
	ExplicitConfidence = 1.0
)

// MetadataPreferredModel is the routing metadata key carrying an explicit backend.
const MetadataPreferredModel = "preferred_model"

// Reasons
const (
	ReasonEmptyQuery      = "empty query"
	ReasonExplicitRequest = "explicit request"
	ReasonLowConfidence   = "low confidence, defaulting"
	ReasonFallback        = "fallback"
	ReasonCode            = "code-related keywords and patterns detected"
	ReasonImage           = "image generation request detected"
	ReasonFresh           = "current information request detected"
	ReasonRoutingError    = "routing error, defaulting"
)
