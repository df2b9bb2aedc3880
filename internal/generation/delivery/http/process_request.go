package http

import "github.com/gin-gonic/gin"

func (h *handler) processGenerateReq(c *gin.Context) (generateReq, error) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

func (h *handler) processRouteReq(c *gin.Context) (routeReq, error) {
	var req routeReq
	err := c.ShouldBindJSON(&req)
	return req, err
}

func (h *handler) processAnalyzeReq(c *gin.Context) (analyzeReq, error) {
	var req analyzeReq
	err := c.ShouldBindJSON(&req)
	return req, err
}
