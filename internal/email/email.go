// Package email delivers transactional mail. Local development logs
// messages instead of sending them so no API key is needed.
package email

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"
)

type Sender interface {
	Send(ctx context.Context, to, subject, html string) error
}

// NewSender picks the delivery backend by environment: a log-only sender
// for ENV=local, the Resend API everywhere else.
func NewSender(env, apiKey, from string, logger *slog.Logger) Sender {
	if env == "local" {
		return &logSender{logger: logger.With("component", "email")}
	}
	return &resendSender{client: resend.NewClient(apiKey), from: from}
}

type logSender struct {
	logger *slog.Logger
}

func (s *logSender) Send(ctx context.Context, to, subject, html string) error {
	s.logger.InfoContext(ctx, "email suppressed in local env",
		"to", to,
		"subject", subject,
		"html", html,
	)
	return nil
}

type resendSender struct {
	client *resend.Client
	from   string
}

func (s *resendSender) Send(ctx context.Context, to, subject, html string) error {
	_, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", to, err)
	}
	return nil
}
