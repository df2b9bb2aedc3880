package http

import "github.com/gin-gonic/gin"

// RegisterRoutes maps the knowledge base endpoints under rg.
func RegisterRoutes(rg *gin.RouterGroup, h *handler) {
	kb := rg.Group("/knowledge")
	kb.POST("/documents", h.AddDocuments)
	kb.POST("/text", h.IngestText)
	kb.POST("/urls", h.IngestURLs)
	kb.POST("/search", h.Search)
	kb.GET("/info", h.Info)
}
