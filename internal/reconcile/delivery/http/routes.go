package http

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/reconcile", h.reconcile)
	r.GET("/reconcile/stats", h.stats)
}
