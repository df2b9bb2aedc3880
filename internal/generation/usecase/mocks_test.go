package usecase

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/goleak"

	"aurax-orchestrator/internal/generation"
	"aurax-orchestrator/internal/model"
	"aurax-orchestrator/internal/router"
	"aurax-orchestrator/pkg/log"
	"aurax-orchestrator/pkg/stablediffusion"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var errBoom = errors.New("boom")

type mockRetriever struct {
	docs      []model.ContextDocument
	err       error
	calls     int
	topK      int
	threshold float64
	info      *model.KnowledgeInfo
}

func (m *mockRetriever) Retrieve(_ context.Context, _ string, topK int, threshold float64) ([]model.ContextDocument, error) {
	m.calls++
	m.topK = topK
	m.threshold = threshold
	return m.docs, m.err
}

func (m *mockRetriever) Info(context.Context) (model.KnowledgeInfo, error) {
	if m.info == nil {
		return model.KnowledgeInfo{}, errBoom
	}
	return *m.info, nil
}

type mockText struct {
	available bool
	text      string
	served    string
	provider  string
	err       error
	panicMsg  string
	calls     int
	lastReq   generation.TextRequest
	models    []string
}

func (m *mockText) Generate(_ context.Context, req generation.TextRequest) (generation.TextResult, error) {
	m.calls++
	m.lastReq = req
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	return generation.TextResult{Text: m.text, Model: m.served, Provider: m.provider}, m.err
}

func (m *mockText) Available(context.Context) bool { return m.available }

func (m *mockText) DefaultModel() string { return "mistral:7b" }

func (m *mockText) ListModels(context.Context) ([]string, error) { return m.models, nil }

type mockCode struct {
	code     string
	err      error
	panicMsg string
	calls    int
	lastReq  generation.CodeRequest
	analysis string
}

func (m *mockCode) GenerateCode(_ context.Context, req generation.CodeRequest) (string, error) {
	m.calls++
	m.lastReq = req
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	return m.code, m.err
}

func (m *mockCode) Model() string { return "qwen2.5-coder:7b" }

func (m *mockCode) AnalyzeCode(_ context.Context, _, question string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.analysis + " / " + question, nil
}

type mockImage struct {
	payload   *stablediffusion.ImagePayload
	err       error
	calls     int
	lastReq   generation.ImageRequest
	available bool
	model     string
	modelErr  error
}

func (m *mockImage) GenerateImage(_ context.Context, req generation.ImageRequest) (*stablediffusion.ImagePayload, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	p := *m.payload
	p.Width, p.Height, p.Steps, p.GuidanceScale = req.Width, req.Height, req.Steps, req.GuidanceScale
	return &p, nil
}

func (m *mockImage) GenerateImages(ctx context.Context, req generation.ImageRequest, n int) ([]*stablediffusion.ImagePayload, error) {
	out := make([]*stablediffusion.ImagePayload, 0, n)
	for k := 0; k < n; k++ {
		p, err := m.GenerateImage(ctx, req)
		if err != nil {
			return nil, err
		}
		p.ImageIndex = k
		out = append(out, p)
	}
	return out, nil
}

func (m *mockImage) Available(context.Context) bool { return m.available }

func (m *mockImage) CurrentModel(context.Context) (string, error) { return m.model, m.modelErr }

type fixture struct {
	retriever *mockRetriever
	text      *mockText
	code      *mockCode
	image     *mockImage
}

func newFixture() *fixture {
	return &fixture{
		retriever: &mockRetriever{},
		text:      &mockText{available: true, text: "general answer"},
		code:      &mockCode{code: "func reverse() {}"},
		image:     &mockImage{payload: &stablediffusion.ImagePayload{ImageBase64: "aGk=", Format: "PNG", Model: "sd-1.5"}},
	}
}

func (f *fixture) useCase() *implUseCase {
	return New(log.NewNop(), router.New(log.NewNop(), router.Thresholds{}, nil),
		f.retriever, f.text, f.code, f.image, nil, Options{})
}

func ptr[T any](v T) *T { return &v }
