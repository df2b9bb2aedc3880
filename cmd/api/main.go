package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"aurax-orchestrator/config"
	_ "aurax-orchestrator/docs" // Swagger docs
	"aurax-orchestrator/internal/bootstrap"
	"aurax-orchestrator/internal/httpserver"
	"aurax-orchestrator/internal/middleware"
	"aurax-orchestrator/pkg/log"
)

// @title       AURAX Orchestrator API
// @description Intent routing, retrieval-augmented generation and knowledge ingestion for local LLM backends.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting AURAX orchestrator...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)
	logger.Infof(ctx, "Ollama URL: %s", cfg.Ollama.URL)

	// 3. Components
	comps, err := bootstrap.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize components: ", err)
		os.Exit(1)
	}

	// 4. Readiness (non-blocking)
	if cfg.Readiness.Enabled {
		go waitForDependencies(ctx, logger, comps, cfg.Readiness)
	}

	// 5. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		ShutdownTimeout: cfg.HTTPServer.ShutdownTimeout,
		TrustedProxies:  cfg.HTTPServer.TrustedProxies,
		Metrics:         comps.Metrics,
		Middleware: middleware.Config{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimitCount:   cfg.RateLimit.Requests,
			RateLimitWindow:  cfg.RateLimit.Window,
		},
		Readiness:    comps.Text,
		GenerationUC: comps.Generation,
		KnowledgeUC:  comps.Knowledge,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		os.Exit(1)
	}

	// 6. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		os.Exit(1)
	}

	logger.Info(context.Background(), "Server stopped gracefully")
}
