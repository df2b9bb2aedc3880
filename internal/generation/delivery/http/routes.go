package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps the generation endpoints under rg.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	rg.POST("/generate", h.Generate)
	rg.POST("/route", h.Route)
	rg.GET("/status", h.Status)
	rg.POST("/code/analyze", h.AnalyzeCode)
}
