package session

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"salaryscope/internal/identity"
	"salaryscope/internal/shared/server/respond"
)

const contextIdentityKey = "sessionIdentity"

// RequireSession gates protected routes. It runs before the handler, so
// an anonymous request is rejected before any collaborator fetch can
// fire; the response carries the login redirect exactly once.
func RequireSession(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := m.Current(c)
		if !ok {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "login required", gin.H{"redirect": "/login"})
			return
		}
		c.Set(contextIdentityKey, ident)
		c.Set("sessionUserId", strconv.FormatInt(ident.ID, 10))
		c.Next()
	}
}

// IdentityFromContext fetches the identity stored by RequireSession.
func IdentityFromContext(c *gin.Context) (identity.Identity, bool) {
	val, ok := c.Get(contextIdentityKey)
	if !ok {
		return identity.Identity{}, false
	}
	ident, ok := val.(identity.Identity)
	return ident, ok
}
