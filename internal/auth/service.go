// Package auth registers users, verifies logins and manages login sessions.
package auth

import (
	"budget_tracker/internal/domain" // Importing domain models
	"context"                        // Request-scoped calls
	"errors"                         // Error matching
	"fmt"                            // Error wrapping
	"strings"                        // Username normalisation

	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
)

const maxUsernameBytes = 150

// UserStore is the subset of the credential store the service needs
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (uint, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// SessionManager binds tokens to identities
type SessionManager interface {
	Establish(ctx context.Context, userID uint) (string, error)
	Resolve(ctx context.Context, token string) (domain.Identity, error)
	End(ctx context.Context, token string) error
}

// Service implements registration, login and logout
type Service struct {
	users     UserStore
	sessions  SessionManager
	cost      int
	dummyHash string // compared against when the username is unknown
}

// NewService creates an auth service hashing with the given bcrypt cost
func NewService(users UserStore, sessions SessionManager, cost int) (*Service, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, err := HashPassword("budget-tracker-dummy-password", cost)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	return &Service{users: users, sessions: sessions, cost: cost, dummyHash: dummy}, nil
}

// Register hashes password and stores a new user
func (s *Service) Register(ctx context.Context, username, password string) (uint, error) {
	username = strings.TrimSpace(username)
	switch {
	case username == "":
		return 0, domain.Invalid("username", "Username is required.")
	case len(username) > maxUsernameBytes:
		return 0, domain.Invalid("username", fmt.Sprintf("Username must be at most %d characters.", maxUsernameBytes))
	case password == "":
		return 0, domain.Invalid("password", "Password is required.")
	case len(password) > maxPasswordBytes:
		return 0, domain.Invalid("password", fmt.Sprintf("Password must be at most %d bytes.", maxPasswordBytes))
	}

	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	id, err := s.users.Create(ctx, username, hash)
	if err != nil {
		return 0, err
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  id,       // New user ID
		"username": username, // Registered username
	}).Info("User registered")
	return id, nil
}

// Login verifies credentials and returns the user id. Unknown usernames and
// wrong passwords both return domain.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (uint, error) {
	username = strings.TrimSpace(username)
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}
	if user == nil {
		CheckPassword(password, s.dummyHash) // Same cost as a real comparison
		logrus.WithField("username", username).Info("Login failed")
		return 0, domain.ErrInvalidCredentials
	}
	if !CheckPassword(password, user.PasswordHash) {
		logrus.WithField("username", username).Info("Login failed")
		return 0, domain.ErrInvalidCredentials
	}
	logrus.WithField("user_id", user.ID).Info("Login succeeded")
	return user.ID, nil
}

// StartSession establishes an identity for userID and returns its token
func (s *Service) StartSession(ctx context.Context, userID uint) (string, error) {
	return s.sessions.Establish(ctx, userID)
}

// Identify resolves a session token to an identity
func (s *Service) Identify(ctx context.Context, token string) (domain.Identity, error) {
	return s.sessions.Resolve(ctx, token)
}

// Logout clears the identity behind token. Logging out without a session is not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.End(ctx, token)
}
