package http

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"aurax-orchestrator/internal/generation"
	"aurax-orchestrator/pkg/response"
)

var (
	errInvalidThreshold = errors.New("context_threshold must be between 0 and 1")
	errInvalidTopK      = fmt.Errorf("top_k must be between 1 and %d", maxTopK)
	errInvalidSize      = fmt.Errorf("width and height must be between 64 and %d", maxImageSide)
	errInvalidSteps     = fmt.Errorf("steps must be between 1 and %d", maxSteps)
	errInvalidNumImages = fmt.Errorf("num_images must be between 1 and %d", maxImages)
)

// mapError writes the HTTP response for a use-case error.
func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, generation.ErrEmptyCode):
		response.Error(c, err, nil)
	case errors.Is(err, generation.ErrBackendUnavailable):
		response.ServiceUnavailable(c, nil)
	default:
		response.InternalError(c, err)
	}
}
