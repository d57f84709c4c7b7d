package access

import (
	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/gin-gonic/gin"
)

// RequireAll lets the request through only when the session holds every label.
func RequireAll(g Gate, labels ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := auth.GetEmail(c.Request.Context())
		if email == "" || !g.AllRolesGranted(c.Request.Context(), email, labels) {
			auth.Unauthorized(c)
			return
		}
		c.Next()
	}
}

// RequireAny lets the request through when the session holds at least one label.
func RequireAny(g Gate, labels ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := auth.GetEmail(c.Request.Context())
		if email == "" || !g.AnyRoleGranted(c.Request.Context(), email, labels) {
			auth.Unauthorized(c)
			return
		}
		c.Next()
	}
}
