package http

import (
	"github.com/gin-gonic/gin"

	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/response"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/scope"
)

// list returns the channels the authenticated session subscribes to.
// @Summary Session channels
// @Tags Channels
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Resp
// @Failure 401 {object} response.Resp
// @Failure 403 {object} response.Resp
// @Router /api/v1/channels [get]
func (h *Handler) list(c *gin.Context) {
	ctx := c.Request.Context()

	sc, err := scope.MustScope(ctx)
	if err != nil {
		response.Unauthorized(c)
		return
	}

	names, err := h.scheme.ForScope(sc)
	if err != nil {
		h.l.Warnf(ctx, "channel.http.list.ForScope: %v", err)
		response.ErrorWithMap(c, err, errMap)
		return
	}

	response.OK(c, h.newListResp(sc.UserID, string(sc.Role), names))
}
