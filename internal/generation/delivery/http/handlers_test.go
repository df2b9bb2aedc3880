package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aurax-orchestrator/internal/generation"
	"aurax-orchestrator/internal/model"
	"aurax-orchestrator/internal/router"
	"aurax-orchestrator/pkg/log"
)

type mockUseCase struct {
	lastGenerate generation.GenerateInput
	outcome      generation.Outcome
	analyzeErr   error
}

func (m *mockUseCase) Generate(_ context.Context, in generation.GenerateInput) generation.Outcome {
	m.lastGenerate = in
	return m.outcome
}

func (m *mockUseCase) Route(_ context.Context, in generation.RouteInput) router.RouteDecision {
	return router.RouteDecision{Backend: model.BackendCode, Confidence: 0.8, Reasoning: in.Query}
}

func (m *mockUseCase) AnalyzeCode(context.Context, generation.AnalyzeInput) (generation.AnalyzeOutput, error) {
	if m.analyzeErr != nil {
		return generation.AnalyzeOutput{}, m.analyzeErr
	}
	return generation.AnalyzeOutput{Analysis: "fine", Model: "coder"}, nil
}

func (m *mockUseCase) SystemStatus(context.Context) generation.SystemStatus {
	return generation.SystemStatus{Healthy: true}
}

func newRouter(uc generation.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), New(log.NewNop(), uc))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestGenerateHandler(t *testing.T) {
	uc := &mockUseCase{outcome: generation.Outcome{Success: false, Error: "empty query provided", ResponseKind: generation.KindError}}
	r := newRouter(uc)

	t.Run("failed outcome is still 200", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/generate", `{"query":"","top_k":2,"context_threshold":0.4,"seed":5}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data generation.Outcome `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Data.Success)
		assert.Equal(t, "empty query provided", body.Data.Error)

		assert.Equal(t, 2, uc.lastGenerate.TopK)
		assert.Equal(t, 0.4, *uc.lastGenerate.ContextThreshold)
		assert.Equal(t, int64(5), *uc.lastGenerate.Seed)
	})

	t.Run("malformed json", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/generate", `{"query":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("threshold out of range", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/generate", `{"query":"x","context_threshold":1.5}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("image size out of range", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/generate", `{"query":"x","width":9000}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("num_images passed through", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/generate", `{"query":"draw a cat","num_images":3}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 3, uc.lastGenerate.NumImages)
	})

	t.Run("too many images", func(t *testing.T) {
		w := do(r, http.MethodPost, "/api/v1/generate", `{"query":"draw a cat","num_images":5}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRouteHandler(t *testing.T) {
	w := do(newRouter(&mockUseCase{}), http.MethodPost, "/api/v1/route", `{"query":"write go"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data routeResp `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "qwen3:coder", body.Data.Backend)
	assert.Equal(t, "code", body.Data.Label)
	assert.Equal(t, "write go", body.Data.Reasoning)
}

func TestStatusHandler(t *testing.T) {
	w := do(newRouter(&mockUseCase{}), http.MethodGet, "/api/v1/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy":true`)
}

func TestAnalyzeCodeHandler(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "ok", body: `{"code":"x := 1"}`, status: http.StatusOK},
		{name: "missing code", body: `{"question":"why"}`, status: http.StatusBadRequest},
		{name: "backend unavailable", body: `{"code":"x"}`, err: generation.ErrBackendUnavailable, status: http.StatusServiceUnavailable},
		{name: "no output", body: `{"code":"x"}`, err: generation.ErrNoOutput, status: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := do(newRouter(&mockUseCase{analyzeErr: tc.err}), http.MethodPost, "/api/v1/code/analyze", tc.body)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}
