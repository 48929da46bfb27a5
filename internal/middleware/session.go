package middleware

import (
	"budget_tracker/internal/domain" // Importing domain models
	"context"                        // Identity resolution
	"errors"                         // Error matching
	"net/http"                       // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

const (
	// SessionCookieName is the cookie carrying the session token
	SessionCookieName = "session"
	// AdvisoryCookieName carries a one-shot advisory message across a redirect
	AdvisoryCookieName = "advisory"
	// LoginPath is where unauthenticated visitors are sent
	LoginPath = "/login"

	identityKey = "identity"
)

// IdentityResolver resolves session tokens
type IdentityResolver interface {
	Identify(ctx context.Context, token string) (domain.Identity, error)
}

// Gate resolves the session cookie on every request and guards protected routes
type Gate struct {
	resolver IdentityResolver
	secure   bool // Secure flag on cookies
}

// NewGate creates a session gate
func NewGate(resolver IdentityResolver, secureCookies bool) *Gate {
	return &Gate{resolver: resolver, secure: secureCookies}
}

// LoadIdentity resolves the session cookie, if any, and stores the identity in the context
func (g *Gate) LoadIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookieName) // Get session cookie
		if err != nil || token == "" {
			c.Next() // Anonymous visitor
			return
		}
		identity, err := g.resolver.Identify(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(identityKey, identity) // Store identity in context
		case errors.Is(err, domain.ErrUnauthenticated):
			g.ClearSession(c) // Stale or tampered cookie
		default:
			// Store failure: carry on as anonymous
			logrus.WithFields(logrus.Fields{
				"path":  c.Request.URL.Path, // Request path
				"error": err.Error(),        // Error message
			}).Error("Failed to resolve session")
		}
		c.Next() // Proceed to the next handler
	}
}

// RequireIdentity rejects requests without an identity, redirecting to the login page with advisory
func (g *Gate) RequireIdentity(advisory string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := IdentityFrom(c)
		if _, err := Check(identity); err != nil {
			g.SetAdvisory(c, advisory)
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort() // The protected handler never runs
			return
		}
		c.Next() // Proceed to the protected handler
	}
}

// Check returns the user id of an authenticated identity or domain.ErrUnauthenticated
func Check(identity domain.Identity) (uint, error) {
	if !identity.Authenticated() {
		return 0, domain.ErrUnauthenticated
	}
	return identity.UserID, nil
}

// IdentityFrom returns the identity resolved for this request
func IdentityFrom(c *gin.Context) (domain.Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok && identity.Authenticated()
}

// SetSession writes the session cookie
func (g *Gate) SetSession(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", g.secure, true)
}

// ClearSession expires the session cookie
func (g *Gate) ClearSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", g.secure, true)
}

// SetAdvisory stores a message for the next rendered page
func (g *Gate) SetAdvisory(c *gin.Context, message string) {
	if message == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AdvisoryCookieName, message, 60, "/", "", g.secure, true)
}

// TakeAdvisory returns the pending advisory message and clears it
func (g *Gate) TakeAdvisory(c *gin.Context) string {
	message, err := c.Cookie(AdvisoryCookieName)
	if err != nil || message == "" {
		return ""
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AdvisoryCookieName, "", -1, "/", "", g.secure, true)
	return message
}
