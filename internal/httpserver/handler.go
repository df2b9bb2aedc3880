package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	generationHTTP "aurax-orchestrator/internal/generation/delivery/http"
	knowledgeHTTP "aurax-orchestrator/internal/knowledge/delivery/http"
	"aurax-orchestrator/internal/model"
)

func (srv *HTTPServer) mapHandlers() {
	srv.registerMiddlewares()
	srv.registerSystemRoutes()
	srv.registerDomainRoutes()
}

func (srv *HTTPServer) registerMiddlewares() {
	mw := srv.middleware
	srv.gin.Use(gin.Recovery(), mw.RequestID(), mw.Logging(), mw.Metrics(), mw.CORS())

	ctx := context.Background()
	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "CORS mode: production")
	} else {
		srv.l.Infof(ctx, "CORS mode: %s", srv.environment)
	}
}

func (srv *HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
	srv.gin.GET("/metrics", gin.WrapH(srv.metrics.Handler()))

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes under /api/v1.
func (srv *HTTPServer) registerDomainRoutes() {
	ctx := context.Background()
	api := srv.gin.Group("/api/v1", srv.middleware.RateLimit())

	generationHTTP.RegisterRoutes(api, generationHTTP.New(srv.l, srv.generationUC))
	srv.l.Infof(ctx, "Generation routes registered under /api/v1")

	if srv.knowledgeUC != nil {
		knowledgeHTTP.RegisterRoutes(api, knowledgeHTTP.New(srv.l, srv.knowledgeUC))
		srv.l.Infof(ctx, "Knowledge routes registered under /api/v1/knowledge")
	} else {
		srv.l.Infof(ctx, "Knowledge base not configured, skipping knowledge routes")
	}
}
