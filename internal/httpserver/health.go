package httpserver

import (
	"github.com/gin-gonic/gin"

	"aurax-orchestrator/pkg/response"
)

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "AURAX orchestrator"
	HealthVersion = "1.0.0"
	ServiceName   = "aurax-orchestrator"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "healthy",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// readyCheck reports ready only once the text backend answers.
// @Summary Readiness Check
// @Description Check if the text generation backend is reachable
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is ready"
// @Failure 503 {object} map[string]interface{} "Text backend unreachable"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	if srv.readiness != nil && !srv.readiness.Available(c.Request.Context()) {
		response.ServiceUnavailable(c, gin.H{
			"status":  "not_ready",
			"service": ServiceName,
		})
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"message": HealthMessage,
		"version": HealthVersion,
		"service": ServiceName,
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"version": HealthVersion,
		"service": ServiceName,
	})
}
