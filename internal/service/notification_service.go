package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/menu-service/internal/config"
	"github.com/spec-kit/menu-service/internal/events"
	"github.com/spec-kit/menu-service/internal/mailer"
)

// NotificationService turns credential-lifecycle events into outbound emails.
// Delivery failures are logged and otherwise ignored.
type NotificationService struct {
	dispatcher events.Dispatcher
	sender     mailer.Sender
	logger     *zap.Logger
	baseURL    string
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, sender mailer.Sender, logger *zap.Logger, cfg config.AppConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		sender:     sender,
		logger:     logger,
		baseURL:    cfg.BaseURL,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleConfirmationLink)
	n.dispatcher.Subscribe(events.EventConfirmationResent, n.handleConfirmationLink)
	n.dispatcher.Subscribe(events.EventLoginCodeIssued, n.handleLoginCode)
	n.dispatcher.Subscribe(events.EventSessionOpened, n.handleSessionOpened)
	n.dispatcher.Subscribe(events.EventPasswordRecoverAsked, n.handleRecoveryLink)
	n.dispatcher.Subscribe(events.EventPasswordReset, n.handlePasswordReset)
	n.dispatcher.Subscribe(events.EventEmailVerified, n.handleEmailVerified)
	n.dispatcher.Subscribe(events.EventLoggedOut, n.handleLoggedOut)
}

func (n *NotificationService) handleConfirmationLink(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SignedTokenPayload)
	if !ok {
		return nil
	}
	body := fmt.Sprintf(`<h1>Confirm your email</h1><a href="%s/verify-email?token=%s">Verify email</a>`,
		n.baseURL, payload.SignedToken)
	return n.send(ctx, event, "no-reply", body)
}

func (n *NotificationService) handleLoginCode(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CodePayload)
	if !ok {
		return nil
	}
	return n.send(ctx, event, "no-reply", fmt.Sprintf("Your code is %s", payload.Code))
}

func (n *NotificationService) handleSessionOpened(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SessionPayload)
	if !ok {
		return nil
	}
	body := fmt.Sprintf(`<h1>Welcome</h1><p>Your token is: %s</p>`, payload.SessionToken)
	return n.send(ctx, event, "Welcome", body)
}

func (n *NotificationService) handleRecoveryLink(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SignedTokenPayload)
	if !ok {
		return nil
	}
	body := fmt.Sprintf(`<h1>Reset your password</h1><a href="%s/reset-password?token=%s">Change password</a>`,
		n.baseURL, payload.SignedToken)
	return n.send(ctx, event, "no-reply", body)
}

func (n *NotificationService) handlePasswordReset(ctx context.Context, event events.Event) error {
	return n.send(ctx, event, "no-reply", "Password updated")
}

func (n *NotificationService) handleEmailVerified(ctx context.Context, event events.Event) error {
	return n.send(ctx, event, "no-reply", "Email verified")
}

func (n *NotificationService) handleLoggedOut(ctx context.Context, event events.Event) error {
	return n.send(ctx, event, "no-reply", "Logout")
}

func (n *NotificationService) send(ctx context.Context, event events.Event, subject, body string) error {
	if err := n.sender.Send(ctx, event.Email, subject, body); err != nil {
		n.logger.Warn("email delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.String("to", event.Email),
			zap.Error(err),
		)
		return err
	}
	n.logger.Debug("email sent",
		zap.String("event_type", string(event.Type)),
		zap.String("to", event.Email),
	)
	return nil
}
