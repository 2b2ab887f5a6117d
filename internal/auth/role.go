package auth

import (
	"net/http"

	"github.com/avelora/airdesk/internal/domain"
	"github.com/gin-gonic/gin"
)

// RequireRole rejects callers whose verified role claim is not in the
// allowed set. It must run after Middleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || !allowed[identity.Role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
