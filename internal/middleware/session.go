package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/shidduch-link/matchmaker-web/internal/principal"
	"github.com/shidduch-link/matchmaker-web/pkg/errors"
)

// PrincipalContextKey is the key used to store the authenticated principal
// in the request context.
const PrincipalContextKey = "principal"

// RequireSession rebuilds the principal from the session cookie and aborts
// with a redirect to the login page when no valid session exists. The
// requested path is carried in the "next" query parameter so the login
// handler can send the matchmaker back where they were going.
func RequireSession(bridge *principal.Bridge) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := bridge.Reconstruct(c)
		if p == nil {
			_ = c.Error(errors.ErrUnauthenticated) //nolint:errcheck
			next := url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, "/auth/login?next="+next)
			c.Abort()
			return
		}

		c.Set(PrincipalContextKey, p)
		c.Next()
	}
}

// LoadSession rebuilds the principal when a valid session cookie is present
// but never blocks the request. Public pages use it to render a signed-in
// navigation bar.
func LoadSession(bridge *principal.Bridge) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p := bridge.Reconstruct(c); p != nil {
			c.Set(PrincipalContextKey, p)
		}
		c.Next()
	}
}

// CurrentPrincipal extracts the authenticated principal from the request
// context. Returns nil when the request carries no session.
func CurrentPrincipal(c *gin.Context) *principal.Principal {
	val, exists := c.Get(PrincipalContextKey)
	if !exists {
		return nil
	}

	p, ok := val.(*principal.Principal)
	if !ok {
		return nil
	}

	return p
}
