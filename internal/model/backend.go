package model

// Backend identifies a generation target. The string value is the wire name
// accepted by callers in preferred_model / explicit_model.
type Backend string

const (
	BackendDefault Backend = "default"
	BackendCode    Backend = "qwen3:coder"
	BackendImage   Backend = "stable-diffusion"
	BackendFresh   Backend = "web-enhanced"
)

// Backends lists every known backend in tie-break order.
var Backends = []Backend{BackendCode, BackendImage, BackendFresh, BackendDefault}

// ParseBackend maps a wire name to a Backend.
func ParseBackend(name string) (Backend, bool) {
	switch Backend(name) {
	case BackendDefault, BackendCode, BackendImage, BackendFresh:
		return Backend(name), true
	}
	return "", false
}

// Label returns a short human label used in metrics and logs.
func (b Backend) Label() string {
	switch b {
	case BackendCode:
		return "code"
	case BackendImage:
		return "image"
	case BackendFresh:
		return "fresh"
	default:
		return "default"
	}
}
