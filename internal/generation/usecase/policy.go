package usecase

import "aurax-orchestrator/internal/model"

// RequiresContext reports whether retrieval runs for a backend.
// Image generation never uses retrieved context.
func RequiresContext(backend model.Backend) bool {
	switch backend {
	case model.BackendImage:
		return false
	case model.BackendDefault, model.BackendCode, model.BackendFresh:
		return true
	}
	return true
}

// EffectiveThreshold returns the retrieval score threshold for a backend.
// Code queries admit looser matches, capped at CodeContextThresholdCap.
func EffectiveThreshold(backend model.Backend, requested float64) float64 {
	if backend == model.BackendCode {
		return min(requested, CodeContextThresholdCap)
	}
	return requested
}
