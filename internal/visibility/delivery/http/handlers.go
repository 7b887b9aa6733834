package http

import (
	"github.com/gin-gonic/gin"

	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/response"
)

// getState returns the most recently delivered visibility state.
// @Summary Current visibility
// @Tags Visibility
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Resp
// @Router /api/v1/visibility [get]
func (h *Handler) getState(c *gin.Context) {
	response.OK(c, stateResp{State: h.source.Current()})
}

// reportState forwards a host visibility report to the emitter. Repeated
// visible reports are accepted and each one triggers a sweep.
// @Summary Report host visibility
// @Tags Visibility
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body reportReq true "visible or hidden"
// @Success 202 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Failure 503 {object} response.Resp
// @Router /api/v1/visibility [post]
func (h *Handler) reportState(c *gin.Context) {
	ctx := c.Request.Context()

	var req reportReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "visibility.http.reportState.ShouldBindJSON: %v", err)
		response.Error(c, errInvalidBody)
		return
	}

	state, err := req.toState()
	if err != nil {
		response.Error(c, errInvalidState)
		return
	}

	if err := h.reporter.Report(ctx, state); err != nil {
		h.l.Errorf(ctx, "visibility.http.reportState.Report: %v", err)
		response.ErrorWithMap(c, err, errMap)
		return
	}

	response.Accepted(c, stateResp{State: state})
}
