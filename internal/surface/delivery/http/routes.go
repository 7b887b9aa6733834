package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the WebSocket routes. /ws authenticates inside
// the handler because browsers cannot send bearer headers on upgrade.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/ws", h.HandleWebSocket)
	r.GET("/ws/stats", h.stats)
}
