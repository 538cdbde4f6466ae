// Package principal bridges the signed session cookie and the per-request
// matchmaker identity. A Principal is reconstructed from the session record
// on every request and never persisted beyond the cookie itself.
package principal

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shidduch-link/matchmaker-web/pkg/jwt"
)

// SessionCookieName is the name of the session cookie.
const SessionCookieName = "matchmaker_session"

// Principal is the authenticated matchmaker acting on a request.
type Principal struct {
	ID    string
	Email string
	Name  string
	Token string // bearer credential for the upstream API
}

// Reconstruct rebuilds a Principal from a stored session record, but only
// when the record's identifier matches the requested one. IDs are compared
// as strings to tolerate numeric/string drift from storage. Returns nil for
// a missing record or a mismatch; an absent Principal is not an error, it is
// the anonymous signal. Side-effect free.
func Reconstruct(record *jwt.SessionClaims, requestedID string) *Principal {
	if record == nil {
		return nil
	}
	if record.MatchmakerID != requestedID {
		return nil
	}
	return &Principal{
		ID:    record.MatchmakerID,
		Email: record.Email,
		Name:  record.Name,
		Token: record.APIToken,
	}
}

// Bridge owns the session cookie lifecycle: establish on login, reconstruct
// on every request, revoke on logout.
type Bridge struct {
	tokens       *jwt.TokenManager
	cookieDomain string
	cookieSecure bool
}

// NewBridge creates a session bridge around a token manager.
func NewBridge(tokens *jwt.TokenManager, cookieDomain string, cookieSecure bool) *Bridge {
	return &Bridge{
		tokens:       tokens,
		cookieDomain: cookieDomain,
		cookieSecure: cookieSecure,
	}
}

// Establish signs the flat session record {identifier, email, name, token}
// and sets it as the session cookie. Called only after the upstream API
// confirmed authentication.
func (b *Bridge) Establish(c *gin.Context, p Principal) error {
	signed, err := b.tokens.GenerateToken(p.ID, p.Email, p.Name, p.Token)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		signed,
		int(b.tokens.GetExpirationTime().Seconds()),
		"/",
		b.cookieDomain,
		b.cookieSecure,
		true, // HttpOnly
	)
	return nil
}

// Reconstruct reads the session cookie and rebuilds the Principal for this
// request. Returns nil when there is no cookie, the signature or expiry is
// invalid, or the stored identifier does not match the token subject.
func (b *Bridge) Reconstruct(c *gin.Context) *Principal {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie == "" {
		return nil
	}

	claims, err := b.tokens.ValidateToken(cookie)
	if err != nil {
		// Invalid cookies are cleared so the browser stops sending them
		b.Revoke(c)
		return nil
	}

	return Reconstruct(claims, claims.Subject)
}

// Revoke removes the session cookie. Succeeds even if no cookie exists.
func (b *Bridge) Revoke(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		b.cookieDomain,
		b.cookieSecure,
		true, // HttpOnly
	)
}
