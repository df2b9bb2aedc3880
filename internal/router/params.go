package router

import "aurax-orchestrator/internal/model"

// SuggestedParameters returns the generation parameters suggested for a backend.
// The result is a fresh map on every call.
func SuggestedParameters(backend model.Backend) map[string]any {
	params := map[string]any{
		"temperature": 0.7,
		"max_tokens":  2000,
	}

	switch backend {
	case model.BackendCode:
		params["temperature"] = 0.3
		params["max_tokens"] = 3000
		params["top_p"] = 0.9
	case model.BackendImage:
		params["steps"] = 30
		params["guidance_scale"] = 7.5
		params["width"] = 512
		params["height"] = 512
	case model.BackendFresh:
		params["temperature"] = 0.6
		params["use_fresh_data"] = true
		params["context_threshold"] = 0.3
	case model.BackendDefault:
	}

	return params
}

// FloatParam reads a numeric parameter, falling back to def.
func FloatParam(params map[string]any, key string, def float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// IntParam reads an integer parameter, falling back to def.
func IntParam(params map[string]any, key string, def int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}
