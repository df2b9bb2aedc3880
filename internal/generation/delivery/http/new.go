package http

import (
	"aurax-orchestrator/internal/generation"
	"aurax-orchestrator/pkg/log"
)

type handler struct {
	l  log.Logger
	uc generation.UseCase
}

// New creates the generation HTTP handler.
func New(l log.Logger, uc generation.UseCase) *handler {
	return &handler{l: l, uc: uc}
}
