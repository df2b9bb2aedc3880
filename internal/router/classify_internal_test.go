package router

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurax-orchestrator/internal/model"
	"aurax-orchestrator/pkg/log"
	"aurax-orchestrator/pkg/metrics"
)

func TestClassifyRecoversFromRuleFault(t *testing.T) {
	m := metrics.New()
	r := New(log.NewNop(), Thresholds{}, m)
	r.rules = append(r.Rules(), Rule{Family: FamilyCode, Name: "broken"})

	got := r.Classify(context.Background(), "write a python function", nil)

	assert.Equal(t, model.BackendDefault, got.Backend)
	assert.Equal(t, DefaultCandidateConfidence, got.Confidence)
	assert.Contains(t, got.Reasoning, ReasonRoutingError)
	assert.Equal(t, SuggestedParameters(model.BackendDefault), got.Parameters)

	count, err := testutil.GatherAndCount(m.Registry(), "aurax_route_decisions_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestClassifySkipsRulesForEmptyAndExplicit(t *testing.T) {
	r := New(log.NewNop(), Thresholds{}, nil)
	r.rules = []Rule{{Family: FamilyCode, Name: "broken"}}

	got := r.Classify(context.Background(), " ", nil)
	assert.Equal(t, ReasonEmptyQuery, got.Reasoning)

	got = r.Classify(context.Background(), "anything", map[string]any{MetadataPreferredModel: "qwen3:coder"})
	assert.Equal(t, model.BackendCode, got.Backend)
	assert.Equal(t, ExplicitConfidence, got.Confidence)
}
