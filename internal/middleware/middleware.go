package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/response"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/scope"
)

const bearerPrefix = "Bearer "

// Auth validates the bearer session token and stores the session scope in
// the request context.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			m.l.Warnf(ctx, "Missing or malformed Authorization header | Path: %s", c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])
		claims, err := m.jwtManager.Verify(tokenString)
		if err != nil {
			m.l.Warnf(ctx, "Token verification failed: %v | Path: %s", err, c.Request.URL.Path)
			response.Unauthorized(c)
			c.Abort()
			return
		}

		sc, err := scope.NewScope(claims)
		if err != nil {
			m.l.Warnf(ctx, "Token carries no usable scope: %v | Path: %s", err, c.Request.URL.Path)
			response.Forbidden(c)
			c.Abort()
			return
		}

		ctx = scope.SetScopeToContext(ctx, sc)
		ctx = m.l.With(ctx, "user_id", sc.UserID, "role", string(sc.Role))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
