package api

import (
	"net/http"

	"github.com/avelora/airdesk/internal/auth"
	"github.com/avelora/airdesk/internal/domain"
	"github.com/gin-gonic/gin"
)

// callerIdentity fetches the identity stored by the auth middleware,
// aborting with 401 when a protected route was somehow reached without it.
func callerIdentity(c *gin.Context) (domain.Identity, bool) {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return domain.Identity{}, false
	}
	return identity, true
}
