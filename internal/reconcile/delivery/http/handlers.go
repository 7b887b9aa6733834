package http

import (
	"github.com/gin-gonic/gin"

	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/response"
)

// reconcile runs one sweep over the posted keys right away, independent of
// host visibility.
// @Summary Reconcile now
// @Tags Reconcile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body reconcileReq true "query keys to invalidate"
// @Success 202 {object} response.Resp
// @Failure 400 {object} response.Resp
// @Router /api/v1/reconcile [post]
func (h *Handler) reconcile(c *gin.Context) {
	ctx := c.Request.Context()

	var req reconcileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Warnf(ctx, "reconcile.http.reconcile.ShouldBindJSON: %v", err)
		response.Error(c, errInvalidBody)
		return
	}

	set, err := req.toSet()
	if err != nil {
		h.l.Warnf(ctx, "reconcile.http.reconcile.toSet: %v", err)
		response.Error(c, errInvalidKey)
		return
	}

	if err := h.uc.Reconcile(ctx, set); err != nil {
		h.l.Errorf(ctx, "reconcile.http.reconcile.Reconcile: %v", err)
		response.Error(c, err)
		return
	}

	response.Accepted(c, reconcileResp{Swept: len(set)})
}

func (h *Handler) stats(c *gin.Context) {
	response.OK(c, statsResp{ActiveRegistrations: h.uc.Active()})
}
