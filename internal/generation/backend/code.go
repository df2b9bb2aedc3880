package backend

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/slok/goresilience"
	"golang.org/x/sync/singleflight"

	"aurax-orchestrator/internal/generation"
	pkgLog "aurax-orchestrator/pkg/log"
	"aurax-orchestrator/pkg/ollama"
)

const (
	DefaultCoderModel       = "qwen2.5-coder:7b"
	DefaultCoderTemperature = 0.3
	DefaultCoderMaxTokens   = 3000
	analyzeTemperature      = 0.2

	logPrefixCode = "internal.generation.backend.Code"
)

// code output keeps blank lines, so only role markers stop generation
var codeStop = []string{"Human:", "User request:"}

const codePromptTemplate = `You are an expert programmer and code assistant. Your task is to provide accurate, efficient, and well-documented code solutions.

User request: %s

Please provide:
1. Clean, readable code that follows best practices
2. Clear explanations of your approach
3. Comments in the code where appropriate
4. If applicable, mention any dependencies or setup requirements

Response:`

const analyzePromptTemplate = "You are an expert code reviewer and analyst. Analyze the following code and answer the question.\n\n" +
	"Code to analyze:\n```\n%s\n```\n\n" +
	"Question: %s\n\n" +
	"Please provide a detailed analysis including:\n" +
	"1. Code functionality and purpose\n" +
	"2. Potential issues or improvements\n" +
	"3. Best practices recommendations\n" +
	"4. Answer to the specific question\n\n" +
	"Response:"

// CodeConfig configures the code backend.
type CodeConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int
	AutoPull    bool
	Resilience  ResilienceConfig
}

// Code runs a code-specialized model on the local Ollama runtime.
type Code struct {
	l      pkgLog.Logger
	client *ollama.Client
	cfg    CodeConfig
	runner goresilience.Runner
	ready  atomic.Bool
	pull   singleflight.Group
}

var (
	_ generation.CodeBackend  = (*Code)(nil)
	_ generation.CodeAnalyzer = (*Code)(nil)
)

// NewCode creates the code backend.
func NewCode(l pkgLog.Logger, client *ollama.Client, cfg CodeConfig) *Code {
	if cfg.Model == "" {
		cfg.Model = DefaultCoderModel
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultCoderTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultCoderMaxTokens
	}
	return &Code{
		l:      l,
		client: client,
		cfg:    cfg,
		runner: newRunner(cfg.Resilience),
	}
}

// Model returns the code model name.
func (c *Code) Model() string {
	return c.cfg.Model
}

// GenerateCode answers a programming request, prefixing retrieved context.
func (c *Code) GenerateCode(ctx context.Context, req generation.CodeRequest) (string, error) {
	if err := c.ensureModel(ctx); err != nil {
		return "", err
	}

	temperature := c.cfg.Temperature
	if req.Temperature != nil && *req.Temperature > 0 {
		temperature = *req.Temperature
	}
	maxTokens := c.cfg.MaxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	return c.generate(ctx, FormatCodePrompt(req.Prompt, req.Context), temperature, maxTokens)
}

// AnalyzeCode reviews code and answers a question about it.
func (c *Code) AnalyzeCode(ctx context.Context, code, question string) (string, error) {
	if err := c.ensureModel(ctx); err != nil {
		return "", err
	}
	return c.generate(ctx, fmt.Sprintf(analyzePromptTemplate, code, question), analyzeTemperature, c.cfg.MaxTokens)
}

// FormatCodePrompt builds the code model prompt with an optional context preamble.
func FormatCodePrompt(prompt, contextText string) string {
	var b strings.Builder
	if contextText != "" {
		b.WriteString("Context and documentation:\n")
		b.WriteString(contextText)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, codePromptTemplate, prompt)
	return b.String()
}

func (c *Code) generate(ctx context.Context, prompt string, temperature float64, maxTokens int) (string, error) {
	var text string
	err := run(ctx, c.runner, func(ctx context.Context) error {
		res, err := c.client.Generate(ctx, ollama.GenerateRequest{
			Model:  c.cfg.Model,
			Prompt: prompt,
			Options: ollama.Options{
				NumPredict:  maxTokens,
				Temperature: temperature,
				Stop:        codeStop,
			},
		})
		if err != nil {
			return err
		}
		text = res.Text
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("code backend: %w", err)
	}
	return text, nil
}

// ensureModel checks that the model is installed, pulling it once when
// AutoPull is set. Concurrent callers share one check. A positive answer is cached.
func (c *Code) ensureModel(ctx context.Context) error {
	if c.ready.Load() {
		return nil
	}
	_, err, _ := c.pull.Do(c.cfg.Model, func() (any, error) {
		return nil, c.installModel(ctx)
	})
	return err
}

func (c *Code) installModel(ctx context.Context) error {
	if c.ready.Load() {
		return nil
	}

	ok, err := c.client.HasModel(ctx, c.cfg.Model)
	if err != nil {
		return fmt.Errorf("code backend: list models: %w", err)
	}
	if !ok {
		if !c.cfg.AutoPull {
			return fmt.Errorf("%w: model %s not installed", generation.ErrBackendUnavailable, c.cfg.Model)
		}
		c.l.Infof(ctx, "%s: pulling %s", logPrefixCode, c.cfg.Model)
		if err := c.client.PullModel(ctx, c.cfg.Model); err != nil {
			return fmt.Errorf("code backend: pull %s: %w", c.cfg.Model, err)
		}
	}

	c.ready.Store(true)
	return nil
}
