package http

import (
	"github.com/gin-gonic/gin"

	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/response"
)

// HandleWebSocket upgrades an authenticated request and attaches the socket
// to the hub.
// @Summary Attach a surface
// @Tags Surface
// @Param token query string false "session token when no Authorization header is sent"
// @Success 101 "Switching Protocols"
// @Failure 401 {object} response.Resp
// @Failure 403 {object} response.Resp
// @Failure 429 {object} response.Resp
// @Router /ws [get]
func (h *Handler) HandleWebSocket(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.limiter.allow(c.ClientIP()); err != nil {
		h.l.Warnf(ctx, "surface.http.HandleWebSocket: %v", err)
		response.Error(c, errTooManyAttaches)
		return
	}

	userID, err := h.processUpgradeRequest(c)
	if err != nil {
		response.ErrorWithMap(c, err, errMap)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.l.Errorf(ctx, "surface.http.HandleWebSocket.Upgrade: %v", err)
		return
	}

	if _, err := h.hub.Attach(conn, userID); err != nil {
		h.l.Warnf(ctx, "surface.http.HandleWebSocket.Attach: %v", err)
	}
}

// stats reports hub statistics.
func (h *Handler) stats(c *gin.Context) {
	response.OK(c, h.hub.GetStats())
}
