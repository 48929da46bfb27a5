package domain

import "time" // Registration timestamp

// User Model
type User struct {
	ID           uint          `gorm:"primaryKey"`                                          // Primary key
	Username     string        `gorm:"size:150;uniqueIndex;not null"`                       // Unique username, immutable
	PasswordHash string        `gorm:"column:password_hash;not null" json:"-"`              // Bcrypt hash, never the plaintext
	CreatedAt    time.Time     // Registration time
	Transactions []Transaction `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // One-to-many relationship with Transaction
	Sessions     []Session     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"` // Server-side sessions (db backend)
}
