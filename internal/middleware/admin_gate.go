package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminGate hides the admin surface entirely when the panel is disabled.
func AdminGate(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		c.Next()
	}
}
