package api

import (
	"budget_tracker/internal/domain"     // Importing domain models
	"budget_tracker/internal/middleware" // Session gate
	"context"                            // Service calls
	"errors"                             // Error matching
	"net/http"                           // HTTP status codes
	"time"                               // Session lifetime

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Authenticator is the auth service as seen by the handlers
type Authenticator interface {
	Register(ctx context.Context, username, password string) (uint, error)
	Login(ctx context.Context, username, password string) (uint, error)
	StartSession(ctx context.Context, userID uint) (string, error)
	Logout(ctx context.Context, token string) error
}

// IndexHandler sends logged-in users to the dashboard and shows the landing page otherwise
func IndexHandler(gate *middleware.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := middleware.IdentityFrom(c); ok {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
		c.HTML(http.StatusOK, "index.html", newPage(c, gate, "Welcome"))
	}
}

// RegisterFormHandler renders the registration form
func RegisterFormHandler(gate *middleware.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "register.html", newPage(c, gate, "Register"))
	}
}

// RegisterHandler creates an account and sends the user to the login page
func RegisterHandler(svc Authenticator, gate *middleware.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := register(c, svc)
		finish(c, gate, res, err)
	}
}

func register(c *gin.Context, svc Authenticator) (Result, error) {
	form, err := bindCredentials(c) // Bind form to struct
	if err == nil {
		_, err = svc.Register(c.Request.Context(), form.Username, form.Password)
	}
	var verr *domain.ValidationError
	switch {
	case err == nil:
		return Result{Redirect: "/login", Advisory: "Registration successful! Please log in."}, nil
	case errors.As(err, &verr):
		return Result{Redirect: "/register", Advisory: verr.Message}, nil
	case errors.Is(err, domain.ErrDuplicateUsername):
		return Result{Redirect: "/register", Advisory: "Username already exists."}, nil
	default:
		return Result{}, err
	}
}

// LoginFormHandler renders the login form
func LoginFormHandler(gate *middleware.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", newPage(c, gate, "Log in"))
	}
}

// LoginHandler verifies credentials and establishes the session
func LoginHandler(svc Authenticator, gate *middleware.Gate, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := login(c, svc, gate, ttl)
		finish(c, gate, res, err)
	}
}

func login(c *gin.Context, svc Authenticator, gate *middleware.Gate, ttl time.Duration) (Result, error) {
	invalid := Result{Redirect: "/login", Advisory: "Invalid username or password."}
	form, err := bindCredentials(c)
	if err != nil || form.Username == "" || form.Password == "" {
		return invalid, nil
	}
	ctx := c.Request.Context()
	userID, err := svc.Login(ctx, form.Username, form.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return invalid, nil
	}
	if err != nil {
		return Result{}, err
	}
	token, err := svc.StartSession(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	gate.SetSession(c, token, int(ttl.Seconds())) // Set session cookie
	return Result{Redirect: "/dashboard", Advisory: "Login successful!"}, nil
}

// LogoutHandler ends the session, if any, and returns to the landing page
func LogoutHandler(svc Authenticator, gate *middleware.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(middleware.SessionCookieName) // Missing cookie is fine
		gate.ClearSession(c)
		if err := svc.Logout(c.Request.Context(), token); err != nil {
			serverError(c, gate, err)
			return
		}
		if identity, ok := middleware.IdentityFrom(c); ok {
			logrus.WithField("user_id", identity.UserID).Info("User logged out")
		}
		respond(c, gate, Result{Redirect: "/", Advisory: "You have been logged out."})
	}
}
