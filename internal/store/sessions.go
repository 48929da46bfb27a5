package store

import (
	"budget_tracker/internal/domain" // Importing domain models
	"context"                        // Request-scoped queries
	"fmt"                            // Error wrapping
	"time"                           // Expiry handling

	"gorm.io/gorm" // GORM ORM library
)

// Sessions keeps login sessions in the sessions table
type Sessions struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSessions creates a gorm-backed session store
func NewSessions(db *gorm.DB) *Sessions {
	return &Sessions{db: db, now: time.Now}
}

// Save stores a session that expires after ttl
func (s *Sessions) Save(ctx context.Context, sid string, userID uint, ttl time.Duration) error {
	row := domain.Session{ID: sid, UserID: userID, ExpiresAt: s.now().Add(ttl).UTC()}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the user id bound to an unexpired session
func (s *Sessions) Load(ctx context.Context, sid string) (uint, error) {
	var row domain.Session
	err := s.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", sid, s.now().UTC()).
		First(&row).Error
	if err != nil {
		return 0, notFound(err, "load session")
	}
	return row.UserID, nil
}

// Delete removes a session; deleting a missing session is not an error
func (s *Sessions) Delete(ctx context.Context, sid string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", sid).Delete(&domain.Session{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes expired sessions and reports how many were removed
func (s *Sessions) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", s.now().UTC()).Delete(&domain.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
