package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered       EventType = "user_registered"
	EventLoginCodeIssued      EventType = "login_code_issued"
	EventSessionOpened        EventType = "session_opened"
	EventPasswordRecoverAsked EventType = "password_recover_requested"
	EventPasswordReset        EventType = "password_reset"
	EventEmailVerified        EventType = "email_verified"
	EventConfirmationResent   EventType = "confirmation_resent"
	EventLoggedOut            EventType = "logged_out"
)

// Event represents a credential-lifecycle event emitted by the auth service.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Email     string      `json:"email"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// SignedTokenPayload carries a signed bearer token handed to the recipient as
// a link parameter (email confirmation, password recovery).
type SignedTokenPayload struct {
	SignedToken string `json:"signed_token"`
}

// CodePayload carries a one-time login code.
type CodePayload struct {
	Code string `json:"code"`
}

// SessionPayload carries the session token issued after code verification.
type SessionPayload struct {
	SessionToken string `json:"session_token"`
}
