package store

import (
	"budget_tracker/internal/domain" // Importing domain models
	"context"                        // Request-scoped queries
	"errors"                         // Error matching
	"fmt"                            // Error wrapping
	"strings"                        // Driver message matching

	"gorm.io/gorm" // GORM ORM library
)

// Credentials persists users and their password hashes
type Credentials struct {
	db *gorm.DB
}

// NewCredentials creates a credential store backed by db
func NewCredentials(db *gorm.DB) *Credentials {
	return &Credentials{db: db}
}

// Create inserts a user. The unique index on username makes the insert the
// uniqueness check, so concurrent registrations cannot both succeed.
func (s *Credentials) Create(ctx context.Context, username, passwordHash string) (uint, error) {
	user := domain.User{Username: username, PasswordHash: passwordHash}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicateUsername
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	return user.ID, nil
}

// FindByUsername returns the user with the given username
func (s *Credentials) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFound(err, "find user by username")
	}
	return &user, nil
}

// FindByID returns the user with the given id
func (s *Credentials) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "find user by id")
	}
	return &user, nil
}

// Count returns the number of users matching username, or all users when username is empty
func (s *Credentials) Count(ctx context.Context, username string) (int64, error) {
	var n int64
	q := s.db.WithContext(ctx).Model(&domain.User{})
	if username != "" {
		q = q.Where("username = ?", username)
	}
	if err := q.Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func notFound(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUniqueViolation recognises duplicate-key errors. TranslateError covers
// dialects that implement it; the message checks cover the rest.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
