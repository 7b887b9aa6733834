package http

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the visibility endpoints on r.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/visibility")
	{
		g.GET("", h.getState)
		g.POST("", h.reportState)
	}
}
