package api

import (
	"budget_tracker/internal/domain"     // Importing domain models
	"budget_tracker/internal/middleware" // Session gate
	"context"                            // Store calls
	"errors"                             // Error matching
	"net/http"                           // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// UserFinder looks users up by id
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// AccountView is the profile shown to its owner. The password hash is never part of it.
type AccountView struct {
	Page
	Username    string
	MemberSince string
}

// AccountHandler shows the current user's profile
func AccountHandler(users UserFinder, gate *middleware.Gate, advisory string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, _ := middleware.IdentityFrom(c)
		user, err := users.FindByID(c.Request.Context(), identity.UserID)
		if errors.Is(err, domain.ErrNotFound) {
			// Session outlived its user
			gate.ClearSession(c)
			respond(c, gate, Result{Redirect: middleware.LoginPath, Advisory: advisory})
			return
		}
		if err != nil {
			serverError(c, gate, err)
			return
		}
		c.HTML(http.StatusOK, "account.html", AccountView{
			Page:        newPage(c, gate, "Account"),
			Username:    user.Username,
			MemberSince: user.CreatedAt.Format(domain.DateLayout),
		})
	}
}
