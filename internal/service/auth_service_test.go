package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/menu-service/internal/auth"
	"github.com/spec-kit/menu-service/internal/config"
	"github.com/spec-kit/menu-service/internal/domain"
	"github.com/spec-kit/menu-service/internal/events"
	"github.com/spec-kit/menu-service/internal/service"
)

type authFixture struct {
	users    *memUserRepo
	tokens   *memTokenRepo
	sessions *memSessionRepo
	sender   *captureSender
	auth     *service.AuthService
	sessMgr  *service.SessionManager
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	cfg := config.AuthConfig{
		JWTSecret:              testSecret,
		BcryptCost:             bcrypt.MinCost,
		CodeWindowMinutes:      5,
		ConfirmTokenTTLMinutes: 5,
		RecoverTokenTTLMinutes: 15,
		SessionTTLDays:         7,
	}

	users := newMemUserRepo()
	tokens := newMemTokenRepo()
	sessions := newMemSessionRepo()
	sender := &captureSender{}

	tokenMgr := auth.NewTokenManager(cfg.JWTSecret)
	dispatcher := events.NewInMemoryDispatcher()

	creds := service.NewCredentialService(users, cfg.BcryptCost)
	ledger := service.NewTokenLedger(tokens, tokenMgr, cfg.CodeWindow())
	sessMgr := service.NewSessionManager(sessions, users, tokenMgr, cfg.SessionTTL())
	authService := service.NewAuthService(cfg, creds, ledger, sessMgr, dispatcher)

	notifications := service.NewNotificationService(dispatcher, sender, zap.NewNop(), config.AppConfig{BaseURL: "http://localhost:8080"})
	notifications.RegisterHandlers()

	return &authFixture{
		users:    users,
		tokens:   tokens,
		sessions: sessions,
		sender:   sender,
		auth:     authService,
		sessMgr:  sessMgr,
	}
}

// extractToken pulls the token query parameter out of an emailed link.
func extractToken(t *testing.T, body string) string {
	t.Helper()
	idx := strings.Index(body, "?token=")
	if idx == -1 {
		t.Fatalf("email body does not contain ?token=: %q", body)
	}
	return strings.SplitN(body[idx+len("?token="):], `"`, 2)[0]
}

// extractCode pulls a login code out of an emailed "Your code is" body.
func extractCode(t *testing.T, body string) string {
	t.Helper()
	const prefix = "Your code is "
	idx := strings.Index(body, prefix)
	if idx == -1 {
		t.Fatalf("email body does not contain a code: %q", body)
	}
	return body[idx+len(prefix):]
}

func (f *authFixture) register(t *testing.T, email, password string) string {
	t.Helper()
	message, err := f.auth.Register(context.Background(), "Tester", email, "", password)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if message != "User created successfully" {
		t.Fatalf("register message = %q", message)
	}
	return extractToken(t, f.sender.lastBody())
}

func (f *authFixture) registerVerified(t *testing.T, email, password string) {
	t.Helper()
	token := f.register(t, email, password)
	if _, _, err := f.auth.VerifyEmail(context.Background(), token); err != nil {
		t.Fatalf("verify email: %v", err)
	}
}

func TestRegisterThenVerifyEmail(t *testing.T) {
	f := newAuthFixture(t)

	token := f.register(t, "a@x.com", "pw123456")

	message, email, err := f.auth.VerifyEmail(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message != "Email verified successfully" {
		t.Errorf("message = %q", message)
	}
	if email != "a@x.com" {
		t.Errorf("email = %q, want a@x.com", email)
	}

	user, err := f.users.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !user.IsEmailVerified() {
		t.Error("emailVerified not set")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "a@x.com", "pw123456")

	if _, err := f.auth.Register(context.Background(), "Other", "a@x.com", "", "pw123456"); !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("want ErrUserExists, got %v", err)
	}
}

func TestLogin_UnverifiedEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "a@x.com", "pw123456")

	if _, err := f.auth.Login(context.Background(), "a@x.com", "pw123456"); !errors.Is(err, domain.ErrEmailNotVerified) {
		t.Errorf("want ErrEmailNotVerified, got %v", err)
	}
}

func TestLogin_WrongPassword_NoTokenIssued(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t, "a@x.com", "pw123456")
	before := f.tokens.count()

	if _, err := f.auth.Login(context.Background(), "a@x.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("want ErrInvalidCredentials, got %v", err)
	}
	if f.tokens.count() != before {
		t.Error("login code issued despite bad credentials")
	}
}

func TestLogin_UnknownUser_SameError(t *testing.T) {
	f := newAuthFixture(t)

	if _, err := f.auth.Login(context.Background(), "ghost@x.com", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("want ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginThenVerifyCode_OpensSession(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t, "a@x.com", "pw123456")

	message, err := f.auth.Login(context.Background(), "a@x.com", "pw123456")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message != "Code sent to email" {
		t.Errorf("message = %q", message)
	}

	code := extractCode(t, f.sender.lastBody())
	sessionToken, err := f.auth.VerifyCode(context.Background(), code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := f.auth.GetSession(context.Background(), sessionToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Errorf("session user = %q", user.Email)
	}

	// Verifying the same code twice must fail.
	if _, err := f.auth.VerifyCode(context.Background(), code); !errors.Is(err, domain.ErrInvalidCode) {
		t.Errorf("second verify: want ErrInvalidCode, got %v", err)
	}
}

func TestForgotPassword_NoAccountEnumeration(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t, "a@x.com", "pw123456")

	known, err := f.auth.ForgotPassword(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unknown, err := f.auth.ForgotPassword(context.Background(), "ghost@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if known != unknown {
		t.Errorf("responses differ: %q vs %q", known, unknown)
	}
}

func TestResetPassword_ChangesCredential(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t, "a@x.com", "pw123456")

	if _, err := f.auth.ForgotPassword(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	token := extractToken(t, f.sender.lastBody())

	message, err := f.auth.ResetPassword(context.Background(), token, "newpw9876")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message != "Password updated successfully" {
		t.Errorf("message = %q", message)
	}

	if _, err := f.auth.Login(context.Background(), "a@x.com", "pw123456"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("old password still accepted: %v", err)
	}
	if _, err := f.auth.Login(context.Background(), "a@x.com", "newpw9876"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestResetPassword_StaleCode(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t, "a@x.com", "pw123456")
	userBefore, _ := f.users.GetByEmail(context.Background(), "a@x.com")

	if _, err := f.auth.ForgotPassword(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	token := extractToken(t, f.sender.lastBody())
	f.tokens.backdateType(domain.TokenPasswordRecover, 6*time.Minute)

	if _, err := f.auth.ResetPassword(context.Background(), token, "newpw9876"); !errors.Is(err, domain.ErrCodeExpired) {
		t.Fatalf("want ErrCodeExpired, got %v", err)
	}
	if f.tokens.count() != 0 {
		t.Error("stale recover row not reclaimed")
	}

	userAfter, _ := f.users.GetByEmail(context.Background(), "a@x.com")
	if userAfter.PasswordHash != userBefore.PasswordHash {
		t.Error("password changed despite expired code")
	}
}

func TestResendEmail_SupersedesPriorCode(t *testing.T) {
	f := newAuthFixture(t)
	oldToken := f.register(t, "a@x.com", "pw123456")

	if _, err := f.auth.ResendEmail(context.Background(), "a@x.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	newToken := extractToken(t, f.sender.lastBody())

	if _, _, err := f.auth.VerifyEmail(context.Background(), oldToken); !errors.Is(err, domain.ErrInvalidCode) {
		t.Errorf("superseded code: want ErrInvalidCode, got %v", err)
	}
	if _, _, err := f.auth.VerifyEmail(context.Background(), newToken); err != nil {
		t.Errorf("fresh code rejected: %v", err)
	}
}

func TestResendEmail_NoAccountEnumeration(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, "a@x.com", "pw123456")

	known, err := f.auth.ResendEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unknown, err := f.auth.ResendEmail(context.Background(), "ghost@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if known != unknown {
		t.Errorf("responses differ: %q vs %q", known, unknown)
	}
}

func TestLogout_ClosesSession(t *testing.T) {
	f := newAuthFixture(t)
	f.registerVerified(t, "a@x.com", "pw123456")

	if _, err := f.auth.Login(context.Background(), "a@x.com", "pw123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	code := extractCode(t, f.sender.lastBody())
	sessionToken, err := f.auth.VerifyCode(context.Background(), code)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.auth.Logout(context.Background(), sessionToken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.auth.GetSession(context.Background(), sessionToken); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("want ErrSessionNotFound after logout, got %v", err)
	}
}
