// Package email provides the transactional email adapter for account flows.
package email

import (
	"context"
	"fmt"
	"log/slog"

	out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
	"github.com/resend/resend-go/v3"
)

// ResendEmailSender implements user/ports/out.EmailSender via the Resend API.
type ResendEmailSender struct {
	client      *resend.Client
	fromAddress string
	appURL      string
}

func NewResendEmailSender(apiKey, fromAddress, appURL string) out.EmailSender {
	return &ResendEmailSender{
		client:      resend.NewClient(apiKey),
		fromAddress: fromAddress,
		appURL:      appURL,
	}
}

func (s *ResendEmailSender) SendVerificationEmail(ctx context.Context, to, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s", s.appURL, token)
	body := fmt.Sprintf(`<p>Verify your email by following this link:</p><p><a href="%s">%s</a></p>`, verifyURL, verifyURL)

	return s.send(ctx, to, "Verify your email", body)
}

func (s *ResendEmailSender) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.appURL, token)
	body := fmt.Sprintf(`<p>Reset your password by following this link (expires in one hour):</p><p><a href="%s">%s</a></p>`, resetURL, resetURL)

	return s.send(ctx, to, "Reset your password", body)
}

func (s *ResendEmailSender) send(ctx context.Context, to, subject, html string) error {
	req := &resend.SendEmailRequest{
		From:    s.fromAddress,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	_, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send email", "to", to, "subject", subject, "err", err)
		return err
	}
	return nil
}

// NoopEmailSender logs instead of sending; used in local/dev environments.
type NoopEmailSender struct{}

func NewNoopEmailSender() out.EmailSender {
	return &NoopEmailSender{}
}

func (s *NoopEmailSender) SendVerificationEmail(ctx context.Context, to, token string) error {
	slog.InfoContext(ctx, "noop verification email", "to", to, "token", token)
	return nil
}

func (s *NoopEmailSender) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	slog.InfoContext(ctx, "noop password reset email", "to", to, "token", token)
	return nil
}
