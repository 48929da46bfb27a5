// Package session binds opaque cookie tokens to user identities.
package session

import (
	"budget_tracker/internal/domain" // Importing domain models
	"budget_tracker/internal/utils"  // Session token signing
	"context"                        // Store calls
	"crypto/rand"                    // Session ids
	"encoding/hex"                   // Session ids
	"errors"                         // Error matching
	"fmt"                            // Error wrapping
	"time"                           // Session lifetime
)

// Store maps session ids to user ids
type Store interface {
	Save(ctx context.Context, sid string, userID uint, ttl time.Duration) error
	Load(ctx context.Context, sid string) (uint, error)
	Delete(ctx context.Context, sid string) error
}

// Manager issues, resolves and ends sessions
type Manager struct {
	store  Store
	secret string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager creates a session manager
func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: secret, ttl: ttl, now: time.Now}
}

// TTL returns the session lifetime
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Establish starts a session for userID and returns the cookie token
func (m *Manager) Establish(ctx context.Context, userID uint) (string, error) {
	sid, err := newSessionID()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	if err := m.store.Save(ctx, sid, userID, m.ttl); err != nil {
		return "", err
	}
	token, err := utils.SignSessionToken(sid, m.secret, m.ttl, m.now())
	if err != nil {
		_ = m.store.Delete(ctx, sid)
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return token, nil
}

// Resolve returns the identity bound to token. Unknown, expired or tampered
// tokens yield domain.ErrUnauthenticated; other errors come from the store.
func (m *Manager) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	sid, err := utils.ParseSessionToken(token, m.secret)
	if err != nil {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	userID, err := m.store.Load(ctx, sid)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{UserID: userID, Token: token}, nil
}

// End removes the session behind token. Tokens that do not parse have no
// server-side state, so ending them succeeds.
func (m *Manager) End(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	sid, err := utils.ParseSessionToken(token, m.secret)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, sid)
}

func newSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
