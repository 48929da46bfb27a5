package api

import (
	"budget_tracker/internal/middleware" // Session gate and logging
	"context"                            // Health checks
	"fmt"                                // Error wrapping
	"net/http"                           // HTTP status codes
	"time"                               // Session lifetime

	"github.com/gin-gonic/gin" // Gin web framework
)

// Unauthenticated advisories per protected page
const (
	dashboardAdvisory = "Please log in to access your dashboard."
	addAdvisory       = "Please log in to add transactions."
	historyAdvisory   = "Please log in to view your history."
	accountAdvisory   = "Please log in to view your account."
)

// Deps are the collaborators the router dispatches to
type Deps struct {
	Auth       Authenticator
	Users      UserFinder
	Ledger     LedgerStore
	Gate       *middleware.Gate
	SessionTTL time.Duration
	Health     func(ctx context.Context) error // Database ping
	Now        func() time.Time                // Defaults to time.Now
}

// NewRouter builds the gin engine with every route registered
func NewRouter(d Deps) (*gin.Engine, error) {
	if d.Now == nil {
		d.Now = time.Now
	}
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	r := gin.New() // Gin router instance
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}
	r.SetHTMLTemplate(tmpl)
	r.Use(gin.Recovery(), middleware.RequestLogger(), d.Gate.LoadIdentity())

	gate := d.Gate

	// Public routes
	r.GET("/", IndexHandler(gate))
	r.GET("/register", RegisterFormHandler(gate))
	r.POST("/register", RegisterHandler(d.Auth, gate))
	r.GET("/login", LoginFormHandler(gate))
	r.POST("/login", LoginHandler(d.Auth, gate, d.SessionTTL))
	r.GET("/logout", LogoutHandler(d.Auth, gate))
	r.GET("/healthz", HealthHandler(d.Health))

	// Protected routes
	r.GET("/dashboard", gate.RequireIdentity(dashboardAdvisory), DashboardHandler(d.Ledger, gate))
	r.GET("/add", gate.RequireIdentity(addAdvisory), AddFormHandler(gate, d.Now))
	r.POST("/add", gate.RequireIdentity(addAdvisory), AddHandler(d.Ledger, gate))
	r.GET("/history", gate.RequireIdentity(historyAdvisory), HistoryHandler(d.Ledger, gate))
	r.GET("/account", gate.RequireIdentity(accountAdvisory), AccountHandler(d.Users, gate, accountAdvisory))

	return r, nil
}

// HealthHandler reports whether the database answers
func HealthHandler(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				c.String(http.StatusServiceUnavailable, "unavailable")
				return
			}
		}
		c.String(http.StatusOK, "ok")
	}
}
