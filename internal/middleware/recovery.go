package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/response"
)

func Recovery(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				ctx := c.Request.Context()
				logger.Errorf(ctx, "Panic recovered: %v | Method: %s | Path: %s",
					err, c.Request.Method, c.Request.URL.Path)

				c.AbortWithStatusJSON(http.StatusInternalServerError, response.Resp{
					ErrorCode: response.InternalServerErrorCode,
					Message:   response.DefaultErrorMessage,
				})
			}
		}()
		c.Next()
	}
}
