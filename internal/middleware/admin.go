package middleware

import (
	"net/http"

	"ganeshai/internal/domain"

	"github.com/gin-gonic/gin"
)

// AdminRequired gates a route to callers whose token carries the ADMIN role.
// It must run after AuthRequired, which seeds the role key; anything else
// gets a 403.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
