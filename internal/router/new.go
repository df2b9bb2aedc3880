package router

import (
	"context"

	"aurax-orchestrator/pkg/log"
	"aurax-orchestrator/pkg/metrics"
)

// Router decides which backend should serve a query.
type Router interface {
	Classify(ctx context.Context, query string, metadata map[string]any) RouteDecision
	Explain(query string) []FamilyScore
}

// RuleClassifier scores queries against fixed regex rule families.
type RuleClassifier struct {
	rules   []Rule
	th      Thresholds
	l       log.Logger
	metrics *metrics.Metrics
}

var _ Router = (*RuleClassifier)(nil)

// New creates a RuleClassifier with the built-in rule table.
// Zero thresholds fall back to the package defaults.
func New(l log.Logger, th Thresholds, m *metrics.Metrics) *RuleClassifier {
	return &RuleClassifier{
		rules:   defaultRules,
		th:      th.withDefaults(),
		l:       l,
		metrics: m,
	}
}

// DefaultThresholds returns the scoring constants used when none are configured.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinConfidence: DefaultMinConfidence,
		CodeScale:     DefaultCodeScale,
		ImageScale:    DefaultImageScale,
		FreshScale:    DefaultFreshScale,
		CodeBoost:     DefaultCodeBoost,
		ImageBoost:    DefaultImageBoost,
	}
}

func (t Thresholds) withDefaults() Thresholds {
	d := DefaultThresholds()
	if t.MinConfidence <= 0 {
		t.MinConfidence = d.MinConfidence
	}
	if t.CodeScale <= 0 {
		t.CodeScale = d.CodeScale
	}
	if t.ImageScale <= 0 {
		t.ImageScale = d.ImageScale
	}
	if t.FreshScale <= 0 {
		t.FreshScale = d.FreshScale
	}
	if t.CodeBoost <= 0 {
		t.CodeBoost = d.CodeBoost
	}
	if t.ImageBoost <= 0 {
		t.ImageBoost = d.ImageBoost
	}
	return t
}
