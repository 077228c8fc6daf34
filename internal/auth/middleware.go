package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context keys for the authenticated identity. The identity travels with
// the request; there is no process-wide mutable auth state.
const (
	ContextKeyLibrarianID = "auth_librarian_id"
	ContextKeyDisplayName = "auth_display_name"
)

// Middleware gates administrative routes behind a session check.
type Middleware struct {
	sessionManager *SessionManager
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(sessionManager *SessionManager) *Middleware {
	return &Middleware{sessionManager: sessionManager}
}

// RequireLogin redirects requests without a valid session to the login
// page. Authenticated requests get the librarian identity injected into
// the request context.
func (m *Middleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		librarianID := m.sessionManager.GetLibrarianID(c.Request)
		if librarianID == 0 {
			c.Redirect(http.StatusFound, "/login?next="+c.Request.URL.Path)
			c.Abort()
			return
		}

		c.Set(ContextKeyLibrarianID, librarianID)
		c.Set(ContextKeyDisplayName, m.sessionManager.GetDisplayName(c.Request))
		c.Next()
	}
}

// CurrentLibrarianID retrieves the authenticated librarian's ID from the
// Gin context. Returns 0 outside of gated routes.
func CurrentLibrarianID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyLibrarianID); exists {
		if librarianID, ok := id.(uint); ok {
			return librarianID
		}
	}
	return 0
}

// CurrentDisplayName retrieves the authenticated librarian's display name.
func CurrentDisplayName(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyDisplayName); exists {
		if displayName, ok := name.(string); ok {
			return displayName
		}
	}
	return ""
}
