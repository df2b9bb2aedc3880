package http

import (
	"github.com/gin-gonic/gin"

	"aurax-orchestrator/pkg/response"
)

// Generate godoc
// @Summary     Generate a response
// @Description Routes the query to a backend, retrieves context and generates. Failed generations still return 200 with success=false.
// @Tags        Generation
// @Accept      json
// @Produce     json
// @Param       body body generateReq true "Generation request"
// @Success     200  {object} response.Resp{data=generation.Outcome}
// @Failure     400  {object} response.Resp "Bad Request"
// @Router      /api/v1/generate [POST]
func (h *handler) Generate(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processGenerateReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out := h.uc.Generate(ctx, req.toInput())
	if !out.Success {
		h.l.Warnf(ctx, "uc.Generate: %s", out.Error)
	}
	response.OK(c, out)
}

// Route godoc
// @Summary     Explain routing
// @Description Returns the routing decision for a query without generating.
// @Tags        Generation
// @Accept      json
// @Produce     json
// @Param       body body routeReq true "Route request"
// @Success     200  {object} response.Resp{data=routeResp}
// @Failure     400  {object} response.Resp "Bad Request"
// @Router      /api/v1/route [POST]
func (h *handler) Route(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processRouteReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	response.OK(c, h.newRouteResp(h.uc.Route(ctx, req.toInput())))
}

// Status godoc
// @Summary     System status
// @Description Reports text, knowledge base and image backend health.
// @Tags        Generation
// @Produce     json
// @Success     200 {object} response.Resp{data=generation.SystemStatus}
// @Router      /api/v1/status [GET]
func (h *handler) Status(c *gin.Context) {
	response.OK(c, h.uc.SystemStatus(c.Request.Context()))
}

// AnalyzeCode godoc
// @Summary     Analyze code
// @Description Reviews a code snippet with the code model and answers a question about it.
// @Tags        Generation
// @Accept      json
// @Produce     json
// @Param       body body analyzeReq true "Code and question"
// @Success     200  {object} response.Resp{data=generation.AnalyzeOutput}
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     503  {object} response.Resp "Code backend unavailable"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/code/analyze [POST]
func (h *handler) AnalyzeCode(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processAnalyzeReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.AnalyzeCode(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.AnalyzeCode: %v", err)
		h.mapError(c, err)
		return
	}
	response.OK(c, out)
}
