package http

import (
	"aurax-orchestrator/internal/knowledge"
	"aurax-orchestrator/pkg/log"
)

type handler struct {
	l  log.Logger
	uc knowledge.UseCase
}

// New creates the knowledge HTTP handler.
func New(l log.Logger, uc knowledge.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
