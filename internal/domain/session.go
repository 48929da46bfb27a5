package domain

import "time" // Session expiry

// Session is a server-side login session (gorm backend).
type Session struct {
	ID        string    `gorm:"primaryKey;size:64"` // Random session id, hex encoded
	UserID    uint      `gorm:"not null;index"`     // Foreign key to User
	ExpiresAt time.Time `gorm:"not null;index"`     // Absolute expiry
}

// Identity is the authenticated user bound to a session token.
// The zero value is an anonymous visitor.
type Identity struct {
	UserID uint
	Token  string
}

// Authenticated reports whether the identity belongs to a logged-in user.
func (i Identity) Authenticated() bool {
	return i.UserID != 0
}
