package http

import "github.com/gin-gonic/gin"

func (h *handler) processDocumentsReq(c *gin.Context) (documentsReq, error) {
	var req documentsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

func (h *handler) processTextReq(c *gin.Context) (textReq, error) {
	var req textReq
	err := c.ShouldBindJSON(&req)
	return req, err
}

func (h *handler) processURLsReq(c *gin.Context) (urlsReq, error) {
	var req urlsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

func (h *handler) processSearchReq(c *gin.Context) (searchReq, error) {
	var req searchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}
