package service

import (
	"context"
	"time"

	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/repository"
)

// SessionManager maintains the single active session per user. Session rows
// are owned exclusively by the manager.
type SessionManager struct {
	sessions repository.SessionRepository
	users    repository.UserRepository
	signer   *auth.TokenManager
	ttl      time.Duration
}

// NewSessionManager builds the manager.
func NewSessionManager(sessions repository.SessionRepository, users repository.UserRepository, signer *auth.TokenManager, ttl time.Duration) *SessionManager {
	return &SessionManager{sessions: sessions, users: users, signer: signer, ttl: ttl}
}

// Open replaces any existing session for the user with a fresh one and
// returns its signed token. The replace is transactional, keeping at most one
// session row per user under concurrent logins.
func (m *SessionManager) Open(ctx context.Context, userID string) (string, error) {
	signed, expiresAt, err := m.signer.Sign(userID, m.ttl)
	if err != nil {
		return "", err
	}
	session := &domain.Session{
		UserID:       userID,
		SessionToken: signed,
		Expires:      expiresAt,
	}
	if err := m.sessions.Replace(ctx, session); err != nil {
		return "", err
	}
	return signed, nil
}

// Resolve loads the session row by exact token match and its owning user.
// Expiry is enforced here: a stale row is reclaimed and the call fails with
// ErrSessionExpired.
func (m *SessionManager) Resolve(ctx context.Context, sessionToken string) (*domain.Session, *domain.User, error) {
	session, err := m.sessions.GetByToken(ctx, sessionToken)
	if err != nil {
		return nil, nil, err
	}
	if time.Now().After(session.Expires) {
		_ = m.sessions.Delete(ctx, session.ID)
		return nil, nil, domain.ErrSessionExpired
	}
	user, err := m.users.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, nil, err
	}
	return session, user, nil
}

// Close resolves the session and deletes its row, returning the owning user.
func (m *SessionManager) Close(ctx context.Context, sessionToken string) (*domain.User, error) {
	session, user, err := m.Resolve(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	if err := m.sessions.Delete(ctx, session.ID); err != nil {
		return nil, err
	}
	return user, nil
}
