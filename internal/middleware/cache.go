package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// PrivateCache marks responses as cacheable by the requesting browser only.
// Used for authenticated file responses that never change under the same ID.
func PrivateCache(maxAgeSeconds int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", fmt.Sprintf("private, max-age=%d", maxAgeSeconds))
		c.Next()
	}
}

// NoStore disables caching, for token-bearing auth responses.
func NoStore() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		c.Next()
	}
}
