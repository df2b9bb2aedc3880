package httpserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"aurax-orchestrator/internal/generation"
	"aurax-orchestrator/internal/knowledge"
	"aurax-orchestrator/internal/middleware"
	"aurax-orchestrator/pkg/log"
	"aurax-orchestrator/pkg/metrics"
)

const defaultShutdownTimeout = 15 * time.Second

// ReadinessChecker reports whether the service can answer generation requests.
type ReadinessChecker interface {
	Available(ctx context.Context) bool
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin             *gin.Engine
	l               log.Logger
	port            int
	mode            string
	environment     string
	shutdownTimeout time.Duration

	// Cross-cutting
	metrics    *metrics.Metrics
	middleware middleware.Middleware
	readiness  ReadinessChecker

	// Domains
	generationUC generation.UseCase
	knowledgeUC  knowledge.UseCase
}

// Config is the dependency bag passed to New().
type Config struct {
	Port            int
	Mode            string
	Environment     string
	ShutdownTimeout time.Duration
	// TrustedProxies may set forwarding headers. Empty trusts none, so the
	// client IP is always the socket peer.
	TrustedProxies []string

	Metrics    *metrics.Metrics
	Middleware middleware.Config
	Readiness  ReadinessChecker

	GenerationUC generation.UseCase
	// KnowledgeUC is optional; knowledge routes are skipped without it.
	KnowledgeUC knowledge.UseCase
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		shutdownTimeout: cfg.ShutdownTimeout,
		metrics:         cfg.Metrics,
		middleware:      middleware.New(logger, cfg.Metrics, cfg.Middleware),
		readiness:       cfg.Readiness,
		generationUC:    cfg.GenerationUC,
		knowledgeUC:     cfg.KnowledgeUC,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	if err := srv.gin.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.generationUC == nil {
		return errors.New("generation usecase is required")
	}
	return nil
}

// Handler exposes the configured engine.
func (srv *HTTPServer) Handler() *gin.Engine {
	return srv.gin
}
