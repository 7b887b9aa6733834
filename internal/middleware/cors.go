package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSConfig controls which browser origins may call the sync API.
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// DefaultCORSConfig allows any origin for the read/report endpoints.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:         86400,
	}
}

// CORS answers preflight requests and stamps allow headers on the rest.
func CORS(config CORSConfig) gin.HandlerFunc {
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")

	return func(c *gin.Context) {
		if allowed := allowOrigin(c.GetHeader("Origin"), config.AllowedOrigins); allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
		}

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", methods)
			c.Header("Access-Control-Allow-Headers", headers)
			if config.MaxAge > 0 {
				c.Header("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or "".
// Entries of the form "*.example.com" match any subdomain.
func allowOrigin(origin string, allowed []string) string {
	for _, a := range allowed {
		switch {
		case a == "*":
			return "*"
		case origin == "":
			return ""
		case a == origin:
			return origin
		case strings.HasPrefix(a, "*.") && strings.HasSuffix(origin, a[1:]):
			return origin
		}
	}
	return ""
}
