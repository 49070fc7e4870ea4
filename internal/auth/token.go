package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/spec-kit/menu-service/internal/domain"
)

// TokenManager issues and validates signed bearer tokens. The same manager
// backs both the short-lived code carriers handed to email recipients and the
// long-lived session tokens; only the subject and TTL differ.
type TokenManager struct {
	secret []byte
}

// NewTokenManager builds a new manager around the process-wide signing secret.
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Claims describes the JWT payload: a subject plus registered claims.
type Claims struct {
	jwt.RegisteredClaims
}

// Sign builds and signs a bearer token carrying subject, expiring after ttl.
// Every token gets a fresh jti, so two signings of the same subject in the
// same second still yield distinct tokens.
func (tm *TokenManager) Sign(subject string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Verify validates signature and expiry and returns the embedded subject.
// A lapsed TTL maps to ErrTokenExpired, any other defect to ErrInvalidToken.
func (tm *TokenManager) Verify(tokenStr string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
