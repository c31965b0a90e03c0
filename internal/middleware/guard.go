package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Pranaysalavadhi/medic-connect-online/internal/routegate"
)

// Guard enforces the route-guard table over authenticated routes. The
// decision itself is routegate.Resolve; this only translates it to HTTP.
func Guard(table *routegate.Table) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := table.Resolve(c.Request.URL.Path, SessionFrom(c))

		switch decision.Outcome {
		case routegate.RedirectLogin:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "authentication_required",
				"redirect": decision.Target,
			})
		case routegate.RedirectFallback:
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "role_not_allowed",
				"redirect": decision.Target,
			})
		default:
			c.Next()
		}
	}
}
