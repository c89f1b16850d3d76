package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"consultly/utils"
)

const ContextUserID = "userID"

// AuthMiddleware verifies the bearer token and stores the verified subject
// on the context. The booking core treats the subject as an opaque id;
// identity itself is established upstream.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := utils.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// RequesterID returns the verified subject set by AuthMiddleware.
func RequesterID(c *gin.Context) string {
	id, _ := c.Get(ContextUserID)
	s, _ := id.(string)
	return s
}
