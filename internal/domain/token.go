package domain

import "time"

// TokenType differentiates the purposes a one-time code can be issued for.
type TokenType string

const (
	TokenEmailConfirmation TokenType = "EMAIL_CONFIRMATION"
	TokenAuthenticate      TokenType = "AUTHENTICATE_WITH_PASSWORD"
	TokenPasswordRecover   TokenType = "PASSWORD_RECOVER"
)

// Token is a stored one-time code. Rows are consumed (deleted) on first
// successful verification or on expiry detection.
type Token struct {
	ID        string
	Code      string
	Type      TokenType
	UserID    string
	CreatedAt time.Time
}

// Session tracks the single active session of a user. The session token is a
// signed bearer token; the row is the source of truth for liveness.
type Session struct {
	ID           string
	UserID       string
	SessionToken string
	Expires      time.Time
	CreatedAt    time.Time
}
