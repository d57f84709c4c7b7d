// Package accesstest provides an in-memory access.Gate and request helpers for handler tests.
package accesstest

import (
	"context"

	"github.com/fekuna/omnipos-backoffice-service/internal/access"
	"github.com/fekuna/omnipos-backoffice-service/internal/auth"
	"github.com/gin-gonic/gin"
)

// StaticGate answers from a fixed email -> labels map.
type StaticGate map[string][]string

func (g StaticGate) AllRolesGranted(_ context.Context, email string, required []string) bool {
	return access.HasAll(g[email], required)
}

func (g StaticGate) AnyRoleGranted(_ context.Context, email string, candidates []string) bool {
	return access.HasAny(g[email], candidates)
}

func (g StaticGate) AllGrantedLabels(_ context.Context, email string) ([]string, error) {
	return g[email], nil
}

// WithSession installs a fixed session on every request; an empty email means anonymous.
func WithSession(userID, email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if email != "" {
			s := &auth.Session{UserID: userID, Email: email}
			c.Request = c.Request.WithContext(auth.WithSession(c.Request.Context(), s))
		}
		c.Next()
	}
}
