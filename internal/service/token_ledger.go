package service

import (
	"context"
	"time"

	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/repository"
)

// TokenLedger issues and consumes short-lived one-time codes and wraps the
// signing primitive for their stateless signed carriers. Token rows are owned
// exclusively by the ledger.
type TokenLedger struct {
	tokens repository.TokenRepository
	signer *auth.TokenManager
	window time.Duration
}

// NewTokenLedger builds the ledger. window is the symmetric freshness window
// applied on consumption.
func NewTokenLedger(tokens repository.TokenRepository, signer *auth.TokenManager, window time.Duration) *TokenLedger {
	return &TokenLedger{tokens: tokens, signer: signer, window: window}
}

// Issue generates a 6-digit code and persists a token row for it. Codes are
// not checked for collisions.
func (l *TokenLedger) Issue(ctx context.Context, userID string, tokenType domain.TokenType) (string, error) {
	code, err := auth.GenerateCode()
	if err != nil {
		return "", err
	}
	token := &domain.Token{
		Code:   code,
		Type:   tokenType,
		UserID: userID,
	}
	if err := l.tokens.Create(ctx, token); err != nil {
		return "", err
	}
	return code, nil
}

// IssueSigned produces a signed bearer token embedding subject, valid for ttl.
// Nothing is persisted.
func (l *TokenLedger) IssueSigned(subject string, ttl time.Duration) (string, error) {
	signed, _, err := l.signer.Sign(subject, ttl)
	return signed, err
}

// VerifySigned validates signature and expiry and returns the subject claim.
func (l *TokenLedger) VerifySigned(signedToken string) (string, error) {
	return l.signer.Verify(signedToken)
}

// Consume claims the most recent token row matching code and type, enforces
// the freshness window, and returns the owning user id. The row is deleted in
// the same statement that reads it, so a duplicate consume fails with
// ErrInvalidCode and a stale code fails with ErrCodeExpired after the row has
// already been reclaimed.
func (l *TokenLedger) Consume(ctx context.Context, code string, tokenType domain.TokenType) (string, error) {
	token, err := l.tokens.ConsumeLatest(ctx, code, tokenType)
	if err != nil {
		return "", err
	}
	if !withinWindow(token.CreatedAt, time.Now(), l.window) {
		return "", domain.ErrCodeExpired
	}
	return token.UserID, nil
}

// InvalidateAllOfType bulk-deletes the user's token rows of the given type.
func (l *TokenLedger) InvalidateAllOfType(ctx context.Context, userID string, tokenType domain.TokenType) error {
	return l.tokens.DeleteAllOfType(ctx, userID, tokenType)
}

// withinWindow reports whether now falls inside the symmetric window around
// createdAt: createdAt-window <= now <= createdAt+window. The window runs in
// both directions to tolerate small clock skew.
func withinWindow(createdAt, now time.Time, window time.Duration) bool {
	return !now.Before(createdAt.Add(-window)) && !now.After(createdAt.Add(window))
}
