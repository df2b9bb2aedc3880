package http

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"aurax-orchestrator/internal/knowledge"
	"aurax-orchestrator/pkg/qdrant"
	"aurax-orchestrator/pkg/response"
)

var (
	errTooManyURLs      = fmt.Errorf("at most %d urls per request", maxURLs)
	errTooManyDocuments = fmt.Errorf("at most %d documents per request", maxDocuments)
	errInvalidTopK      = fmt.Errorf("top_k must be between 1 and %d", maxTopK)
	errInvalidThreshold = errors.New("score_threshold must be between 0 and 1")
)

func (h *handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, knowledge.ErrNoDocuments),
		errors.Is(err, knowledge.ErrNoChunks),
		errors.Is(err, knowledge.ErrInvalidURL),
		errors.Is(err, knowledge.ErrEmptyQuery),
		errors.Is(err, knowledge.ErrFetchFailed):
		response.Error(c, err, nil)
	case errors.Is(err, qdrant.ErrCollectionNotFound):
		response.ServiceUnavailable(c, map[string]any{"reason": "knowledge base is empty"})
	default:
		response.InternalError(c, err)
	}
}
