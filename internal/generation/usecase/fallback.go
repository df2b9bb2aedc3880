package usecase

import (
	"context"
	"fmt"

	"aurax-orchestrator/internal/generation"
)

// Attempt produces an outcome or an error meaning "no usable output".
type Attempt func(ctx context.Context) (generation.Outcome, error)

// Fallback runs primary and, if it errors or panics, runs secondary once
// with the same context. secondary's result is final. onFallback, when set,
// is called with the primary failure before secondary runs.
func Fallback(primary, secondary Attempt, onFallback func(error)) Attempt {
	return func(ctx context.Context) (generation.Outcome, error) {
		out, err := safeRun(ctx, primary)
		if err == nil {
			return out, nil
		}
		if onFallback != nil {
			onFallback(err)
		}
		return secondary(ctx)
	}
}

func safeRun(ctx context.Context, a Attempt) (out generation.Outcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return a(ctx)
}
