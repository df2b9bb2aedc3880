package http

import (
	"github.com/gin-gonic/gin"

	"aurax-orchestrator/pkg/response"
)

// AddDocuments godoc
// @Summary     Add documents
// @Description Embeds and stores documents without chunking.
// @Tags        Knowledge
// @Accept      json
// @Produce     json
// @Param       body body documentsReq true "Documents"
// @Success     200  {object} response.Resp{data=knowledge.AddOutput}
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/knowledge/documents [POST]
func (h *handler) AddDocuments(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processDocumentsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.AddDocuments(ctx, req.Documents)
	if err != nil {
		h.l.Errorf(ctx, "uc.AddDocuments: %v", err)
		h.mapError(c, err)
		return
	}
	response.OK(c, out)
}

// IngestText godoc
// @Summary     Ingest text
// @Description Cleans, chunks and stores a raw text.
// @Tags        Knowledge
// @Accept      json
// @Produce     json
// @Param       body body textReq true "Text"
// @Success     200  {object} response.Resp{data=knowledge.IngestResult}
// @Failure     400  {object} response.Resp "Bad Request"
// @Router      /api/v1/knowledge/text [POST]
func (h *handler) IngestText(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processTextReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.IngestText(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.IngestText: %v", err)
		h.mapError(c, err)
		return
	}
	response.OK(c, out)
}

// IngestURLs godoc
// @Summary     Ingest web pages
// @Description Fetches pages and stores their chunks. Per-URL failures are listed in the response.
// @Tags        Knowledge
// @Accept      json
// @Produce     json
// @Param       body body urlsReq true "URLs"
// @Success     200  {object} response.Resp{data=knowledge.IngestURLsOutput}
// @Failure     400  {object} response.Resp "Bad Request"
// @Router      /api/v1/knowledge/urls [POST]
func (h *handler) IngestURLs(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processURLsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	response.OK(c, h.uc.IngestURLs(ctx, req.URLs))
}

// Search godoc
// @Summary     Search the knowledge base
// @Tags        Knowledge
// @Accept      json
// @Produce     json
// @Param       body body searchReq true "Query"
// @Success     200  {object} response.Resp{data=[]model.ContextDocument}
// @Failure     400  {object} response.Resp "Bad Request"
// @Router      /api/v1/knowledge/search [POST]
func (h *handler) Search(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSearchReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	topK, threshold := req.params()
	docs, err := h.uc.Retrieve(ctx, req.Query, topK, threshold)
	if err != nil {
		h.l.Warnf(ctx, "uc.Retrieve: %v", err)
		h.mapError(c, err)
		return
	}
	response.OK(c, docs)
}

// Info godoc
// @Summary     Knowledge base info
// @Tags        Knowledge
// @Produce     json
// @Success     200 {object} response.Resp{data=model.KnowledgeInfo}
// @Failure     503 {object} response.Resp "Collection missing"
// @Router      /api/v1/knowledge/info [GET]
func (h *handler) Info(c *gin.Context) {
	ctx := c.Request.Context()

	info, err := h.uc.Info(ctx)
	if err != nil {
		h.l.Warnf(ctx, "uc.Info: %v", err)
		h.mapError(c, err)
		return
	}
	response.OK(c, info)
}
