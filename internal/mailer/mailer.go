package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/menu-service/internal/config"
)

// Sender delivers a single email. The orchestrator treats delivery as
// fire-and-forget: a failed send never rolls back the preceding state change.
type Sender interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogSender logs emails instead of sending them. Used when no API key is
// configured (local development).
type LogSender struct {
	logger *zap.Logger
}

func (s *LogSender) Send(_ context.Context, to, subject, body string) error {
	s.logger.Info("outbound email (log only)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func (s *ResendSender) Send(ctx context.Context, to, subject, body string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}
	if _, err := s.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}

// NewSender returns a ResendSender when an API key is configured, otherwise a
// LogSender.
func NewSender(cfg config.MailConfig, logger *zap.Logger) Sender {
	if cfg.ResendAPIKey == "" {
		return &LogSender{logger: logger}
	}
	return &ResendSender{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   cfg.EmailFrom,
	}
}
