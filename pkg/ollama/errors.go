package ollama

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyPrompt   = errors.New("ollama: empty prompt")
	ErrEmptyResponse = errors.New("ollama: empty response")
	ErrUnavailable   = errors.New("ollama: service unavailable")
)

// APIError is returned when Ollama answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ollama: status %d: %s", e.StatusCode, e.Body)
}
