package usecase

import (
	"context"
	"fmt"
	"strings"

	"aurax-orchestrator/internal/generation"
)

// AnalyzeCode reviews a snippet with the code backend.
func (uc *implUseCase) AnalyzeCode(ctx context.Context, input generation.AnalyzeInput) (generation.AnalyzeOutput, error) {
	if strings.TrimSpace(input.Code) == "" {
		return generation.AnalyzeOutput{}, generation.ErrEmptyCode
	}

	analyzer, ok := uc.code.(generation.CodeAnalyzer)
	if uc.code == nil || !ok {
		return generation.AnalyzeOutput{}, generation.ErrBackendUnavailable
	}

	question := strings.TrimSpace(input.Question)
	if question == "" {
		question = defaultAnalyzeQuestion
	}

	analysis, err := analyzer.AnalyzeCode(ctx, input.Code, question)
	if err != nil {
		uc.l.Errorf(ctx, "%s: %v", LogPrefixAnalyzeCode, err)
		return generation.AnalyzeOutput{}, fmt.Errorf("analyze code: %w", err)
	}
	if strings.TrimSpace(analysis) == "" {
		return generation.AnalyzeOutput{}, generation.ErrNoOutput
	}

	return generation.AnalyzeOutput{Analysis: analysis, Model: uc.code.Model()}, nil
}
