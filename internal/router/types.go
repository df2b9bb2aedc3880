package router

import (
	"regexp"

	"aurax-orchestrator/internal/model"
)

// Family is a group of patterns scored together.
type Family string

const (
	FamilyCode  Family = "code"
	FamilyImage Family = "image"
	FamilyFresh Family = "fresh"
)

// RouteDecision is the classifier output for a single query.
type RouteDecision struct {
	Backend    model.Backend  `json:"backend"`
	Confidence float64        `json:"confidence"`
	Reasoning  string         `json:"reasoning"`
	Parameters map[string]any `json:"parameters"`
}

// Rule is one boolean pattern test over the lower-cased query.
// Booster rules add a fixed bonus instead of counting towards the match ratio.
type Rule struct {
	Family  Family
	Name    string
	Booster bool
	Pattern *regexp.Regexp
}

// Match reports whether the rule fires on an already lower-cased query.
func (r Rule) Match(lowered string) bool {
	return r.Pattern.MatchString(lowered)
}

// Thresholds holds the scoring constants. Zero values are replaced by defaults.
type Thresholds struct {
	MinConfidence float64
	CodeScale     float64
	ImageScale    float64
	FreshScale    float64
	CodeBoost     float64
	ImageBoost    float64
}

// FamilyScore is the per-family result kept for diagnostics.
type FamilyScore struct {
	Family     Family   `json:"family"`
	Matched    []string `json:"matched"`
	Total      int      `json:"total"`
	Boosted    bool     `json:"boosted"`
	Confidence float64  `json:"confidence"`
}

type candidate struct {
	backend    model.Backend
	confidence float64
	reasoning  string
}
