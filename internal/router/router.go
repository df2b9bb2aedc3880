package router

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"aurax-orchestrator/internal/model"
)

// Classify maps a query to a backend. It never fails: internal errors
// produce a DEFAULT decision with the error text in the reasoning.
func (r *RuleClassifier) Classify(ctx context.Context, query string, metadata map[string]any) (decision RouteDecision) {
	defer func() {
		if rec := recover(); rec != nil {
			r.l.Errorf(ctx, "%s: recovered: %v", LogPrefixClassify, rec)
			decision = RouteDecision{
				Backend:    model.BackendDefault,
				Confidence: DefaultCandidateConfidence,
				Reasoning:  fmt.Sprintf("%s: %v", ReasonRoutingError, rec),
				Parameters: SuggestedParameters(model.BackendDefault),
			}
		}
		r.metrics.ObserveRoute(decision.Backend.Label())
	}()

	if strings.TrimSpace(query) == "" {
		return newDecision(model.BackendDefault, ExplicitConfidence, ReasonEmptyQuery)
	}

	if preferred, ok := preferredBackend(metadata); ok {
		r.l.Debugf(ctx, "%s: explicit backend %s", LogPrefixClassify, preferred)
		return newDecision(preferred, ExplicitConfidence, ReasonExplicitRequest+": "+string(preferred))
	}

	scores := r.Explain(query)
	candidates := make([]candidate, 0, len(scores)+1)
	for _, s := range scores {
		candidates = append(candidates, candidate{
			backend:    familyBackend(s.Family),
			confidence: s.Confidence,
			reasoning:  familyReason(s.Family),
		})
	}
	candidates = append(candidates, candidate{
		backend:    model.BackendDefault,
		confidence: DefaultCandidateConfidence,
		reasoning:  ReasonFallback,
	})

	// Stable sort keeps CODE > IMAGE > FRESH > DEFAULT on ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].confidence > candidates[j].confidence
	})
	best := candidates[0]

	if best.backend != model.BackendDefault && best.confidence < r.th.MinConfidence {
		best = candidate{
			backend:    model.BackendDefault,
			confidence: DefaultCandidateConfidence,
			reasoning:  ReasonLowConfidence,
		}
	}

	r.l.Infof(ctx, "%s: routed to %s (confidence: %.2f)", LogPrefixClassify, best.backend, best.confidence)
	return newDecision(best.backend, best.confidence, best.reasoning)
}

// Rules returns the classifier's rule table.
func (r *RuleClassifier) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Explain returns the per-family scores in tie-break order.
func (r *RuleClassifier) Explain(query string) []FamilyScore {
	lowered := strings.ToLower(query)
	families := []Family{FamilyCode, FamilyImage, FamilyFresh}

	scores := make([]FamilyScore, 0, len(families))
	for _, f := range families {
		s := FamilyScore{Family: f, Matched: []string{}}
		for _, rule := range r.rules {
			if rule.Family != f {
				continue
			}
			if rule.Booster {
				if rule.Match(lowered) {
					s.Boosted = true
				}
				continue
			}
			s.Total++
			if rule.Match(lowered) {
				s.Matched = append(s.Matched, rule.Name)
			}
		}
		s.Confidence = r.score(f, len(s.Matched), s.Total, s.Boosted)
		scores = append(scores, s)
	}
	return scores
}

func (r *RuleClassifier) score(f Family, matched, total int, boosted bool) float64 {
	if total == 0 {
		return 0
	}

	var scale, boost float64
	switch f {
	case FamilyCode:
		scale, boost = r.th.CodeScale, r.th.CodeBoost
	case FamilyImage:
		scale, boost = r.th.ImageScale, r.th.ImageBoost
	case FamilyFresh:
		scale = r.th.FreshScale
	}

	conf := math.Min(float64(matched)/float64(total)*scale, 1.0)
	if boosted && boost > 0 {
		conf = math.Min(conf+boost, 1.0)
	}
	return conf
}

func preferredBackend(metadata map[string]any) (model.Backend, bool) {
	if metadata == nil {
		return "", false
	}
	name, ok := metadata[MetadataPreferredModel].(string)
	if !ok {
		return "", false
	}
	return model.ParseBackend(name)
}

func familyBackend(f Family) model.Backend {
	switch f {
	case FamilyCode:
		return model.BackendCode
	case FamilyImage:
		return model.BackendImage
	case FamilyFresh:
		return model.BackendFresh
	default:
		return model.BackendDefault
	}
}

func familyReason(f Family) string {
	switch f {
	case FamilyCode:
		return ReasonCode
	case FamilyImage:
		return ReasonImage
	case FamilyFresh:
		return ReasonFresh
	default:
		return ReasonFallback
	}
}

func newDecision(b model.Backend, confidence float64, reasoning string) RouteDecision {
	return RouteDecision{
		Backend:    b,
		Confidence: confidence,
		Reasoning:  reasoning,
		Parameters: SuggestedParameters(b),
	}
}
