package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/menu-service/internal/config"
	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/events"
)

// Response messages returned to the HTTP layer. The two unauthenticated
// email-only flows return the same message whether or not the account exists,
// so responses cannot be used to enumerate accounts.
const (
	msgUserCreated     = "User created successfully"
	msgCodeSent        = "Code sent to email"
	msgRecoverySent    = "If the email exists, a recovery link was sent"
	msgPasswordUpdated = "Password updated successfully"
	msgEmailVerified   = "Email verified successfully"
	msgConfirmResent   = "If the email exists, a confirmation link was sent"
	msgLoggedOut       = "Logged out successfully"
)

// AuthService composes the credential store, token ledger and session manager
// into the user-facing authentication flows. Notifications go through the
// event dispatcher; their delivery never gates a flow's outcome.
type AuthService struct {
	creds      *CredentialService
	ledger     *TokenLedger
	sessions   *SessionManager
	dispatcher events.Dispatcher
	confirmTTL time.Duration
	recoverTTL time.Duration
}

// NewAuthService builds the orchestrator.
func NewAuthService(cfg config.AuthConfig, creds *CredentialService, ledger *TokenLedger, sessions *SessionManager, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		creds:      creds,
		ledger:     ledger,
		sessions:   sessions,
		dispatcher: dispatcher,
		confirmTTL: cfg.ConfirmTokenTTL(),
		recoverTTL: cfg.RecoverTokenTTL(),
	}
}

// Register creates an account and emails a signed confirmation link.
func (s *AuthService) Register(ctx context.Context, name, email, image, password string) (string, error) {
	user, err := s.creds.Create(ctx, name, email, image, password)
	if err != nil {
		return "", err
	}

	if err := s.issueConfirmation(ctx, user, events.EventUserRegistered); err != nil {
		return "", err
	}
	return msgUserCreated, nil
}

// Login verifies credentials and emails a one-time login code. A missing user
// and a wrong password surface identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}
	if !user.IsEmailVerified() {
		return "", domain.ErrEmailNotVerified
	}
	if !s.creds.VerifyPassword(user, password) {
		return "", domain.ErrInvalidCredentials
	}

	code, err := s.ledger.Issue(ctx, user.ID, domain.TokenAuthenticate)
	if err != nil {
		return "", err
	}

	s.publish(ctx, events.EventLoginCodeIssued, user.Email, events.CodePayload{Code: code})
	return msgCodeSent, nil
}

// VerifyCode consumes a login code and opens the user's session.
func (s *AuthService) VerifyCode(ctx context.Context, code string) (string, error) {
	userID, err := s.ledger.Consume(ctx, code, domain.TokenAuthenticate)
	if err != nil {
		return "", err
	}

	sessionToken, err := s.sessions.Open(ctx, userID)
	if err != nil {
		return "", err
	}

	if user, err := s.creds.FindByID(ctx, userID); err == nil {
		s.publish(ctx, events.EventSessionOpened, user.Email, events.SessionPayload{SessionToken: sessionToken})
	}
	return sessionToken, nil
}

// ForgotPassword emails a signed recovery link. The response is identical
// whether or not the email is registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return msgRecoverySent, nil
		}
		return "", err
	}

	code, err := s.ledger.Issue(ctx, user.ID, domain.TokenPasswordRecover)
	if err != nil {
		return "", err
	}
	signed, err := s.ledger.IssueSigned(code, s.recoverTTL)
	if err != nil {
		return "", err
	}

	s.publish(ctx, events.EventPasswordRecoverAsked, user.Email, events.SignedTokenPayload{SignedToken: signed})
	return msgRecoverySent, nil
}

// ResetPassword validates the signed recovery token, consumes the embedded
// code and overwrites the password.
func (s *AuthService) ResetPassword(ctx context.Context, signedToken, newPassword string) (string, error) {
	code, err := s.ledger.VerifySigned(signedToken)
	if err != nil {
		return "", err
	}

	userID, err := s.ledger.Consume(ctx, code, domain.TokenPasswordRecover)
	if err != nil {
		return "", err
	}

	if err := s.creds.UpdatePassword(ctx, userID, newPassword); err != nil {
		return "", err
	}

	if user, err := s.creds.FindByID(ctx, userID); err == nil {
		s.publish(ctx, events.EventPasswordReset, user.Email, nil)
	}
	return msgPasswordUpdated, nil
}

// VerifyEmail validates the signed confirmation token, consumes the embedded
// code and stamps the account verified. Returns the verified email address.
func (s *AuthService) VerifyEmail(ctx context.Context, signedToken string) (string, string, error) {
	code, err := s.ledger.VerifySigned(signedToken)
	if err != nil {
		return "", "", err
	}

	userID, err := s.ledger.Consume(ctx, code, domain.TokenEmailConfirmation)
	if err != nil {
		return "", "", err
	}

	if err := s.creds.MarkEmailVerified(ctx, userID); err != nil {
		return "", "", err
	}

	user, err := s.creds.FindByID(ctx, userID)
	if err != nil {
		return "", "", err
	}

	s.publish(ctx, events.EventEmailVerified, user.Email, nil)
	return msgEmailVerified, user.Email, nil
}

// ResendEmail supersedes all live confirmation codes for the account with a
// fresh one. The response is identical whether or not the email is registered.
func (s *AuthService) ResendEmail(ctx context.Context, email string) (string, error) {
	user, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return msgConfirmResent, nil
		}
		return "", err
	}

	if err := s.ledger.InvalidateAllOfType(ctx, user.ID, domain.TokenEmailConfirmation); err != nil {
		return "", err
	}
	if err := s.issueConfirmation(ctx, user, events.EventConfirmationResent); err != nil {
		return "", err
	}
	return msgConfirmResent, nil
}

// Logout closes the session identified by the token.
func (s *AuthService) Logout(ctx context.Context, sessionToken string) (string, error) {
	user, err := s.sessions.Close(ctx, sessionToken)
	if err != nil {
		return "", err
	}
	s.publish(ctx, events.EventLoggedOut, user.Email, nil)
	return msgLoggedOut, nil
}

// GetSession resolves the session token to its owning user. The HTTP layer
// strips the password hash before returning the user.
func (s *AuthService) GetSession(ctx context.Context, sessionToken string) (*domain.User, error) {
	_, user, err := s.sessions.Resolve(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issueConfirmation(ctx context.Context, user *domain.User, eventType events.EventType) error {
	code, err := s.ledger.Issue(ctx, user.ID, domain.TokenEmailConfirmation)
	if err != nil {
		return err
	}
	signed, err := s.ledger.IssueSigned(code, s.confirmTTL)
	if err != nil {
		return err
	}
	s.publish(ctx, eventType, user.Email, events.SignedTokenPayload{SignedToken: signed})
	return nil
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, email string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Email:     email,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
