package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/beout/beout-admin/pkg/logger"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// SendGridMailer delivers email through the SendGrid v3 API
type SendGridMailer struct {
	client *sendgrid.Client
}

// NewSendGridMailer creates a new SendGridMailer
func NewSendGridMailer(apiKey string) (*SendGridMailer, error) {
	if apiKey == "" {
		return nil, errors.New("sendgrid api key is required")
	}
	return &SendGridMailer{client: sendgrid.NewSendClient(apiKey)}, nil
}

// Name returns the mailer name
func (m *SendGridMailer) Name() string {
	return "sendgrid"
}

// Send delivers msg and returns the SendGrid message ID
func (m *SendGridMailer) Send(ctx context.Context, msg *Message) (string, error) {
	from := mail.NewEmail(msg.FromName, msg.FromEmail)
	to := mail.NewEmail("", msg.To)
	email := mail.NewSingleEmail(from, msg.Subject, to, PlainText(msg.HTML), msg.HTML)

	resp, err := m.client.SendWithContext(ctx, email)
	if err != nil {
		return "", fmt.Errorf("sendgrid request failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		logger.WarnCtx(ctx, "sendgrid rejected email",
			zap.Int("status", resp.StatusCode),
			zap.String("body", resp.Body),
		)
		return "", fmt.Errorf("%w: sendgrid status %d", ErrDeliveryFailed, resp.StatusCode)
	}

	if ids := resp.Headers["X-Message-Id"]; len(ids) > 0 {
		return ids[0], nil
	}
	return "", nil
}
