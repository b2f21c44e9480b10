// Package notify emails the shop owner whenever a booking lands on the
// calendar, so unconfirmed reservations get a human look the same day.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/konanauto/garage-booking/internal/titles"
	"github.com/konanauto/garage-booking/pkg/logging"
)

// Sender delivers a composed message. Implementations can be swapped
// (SendGrid, SES, SMTP) without changing callers.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Message is one outbound email.
type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// BookingReceived composes the owner notification for a new reservation.
// All-day work items carry no clock time, only the date.
func BookingReceived(d titles.Details, start time.Time, wholeDay bool) Message {
	when := start.Format("2006/01/02")
	if !wholeDay {
		when = start.Format("2006/01/02 15:04")
	}
	body := fmt.Sprintf("新しい予約が入りました。\n\n日時: %s\nサービス: %s\n\n%s",
		when, d.Service, titles.Description(d))
	return Message{
		Subject: fmt.Sprintf("【新規予約】%s - %s", when, d.Service),
		Body:    body,
	}
}

// SendGridSender sends email through the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	toEmail   string
	logger    *logging.Logger
}

// SendGridConfig holds SendGrid credentials and the owner address that
// receives booking notifications.
type SendGridConfig struct {
	APIKey     string
	FromEmail  string
	FromName   string
	OwnerEmail string
}

// NewSendGridSender returns nil when no API key is configured; callers
// treat a nil sender as notifications disabled.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.FromName == "" {
		cfg.FromName = "予約システム"
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		toEmail:   cfg.OwnerEmail,
		logger:    logger,
	}
}

// Send delivers the message. An empty Message.To falls back to the
// configured owner address.
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	if s.client == nil {
		return fmt.Errorf("notify: sendgrid client not configured")
	}

	to := msg.To
	if to == "" {
		to = s.toEmail
	}
	if to == "" {
		return fmt.Errorf("notify: no recipient configured")
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	m := mail.NewSingleEmail(from, msg.Subject, mail.NewEmail(msg.ToName, to), msg.Body, msg.Body)

	resp, err := s.client.SendWithContext(ctx, m)
	if err != nil {
		s.logger.Error("sendgrid send failed", "error", err, "to", to)
		return fmt.Errorf("notify: sendgrid send failed: %w", err)
	}
	if resp.StatusCode >= 400 {
		s.logger.Error("sendgrid returned error status", "status", resp.StatusCode, "to", to)
		return fmt.Errorf("notify: sendgrid returned status %d", resp.StatusCode)
	}

	s.logger.Info("booking notification sent", "to", to, "subject", msg.Subject)
	return nil
}

// StubSender logs instead of sending, for local runs without SendGrid.
type StubSender struct {
	logger *logging.Logger
}

func NewStubSender(logger *logging.Logger) *StubSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubSender{logger: logger}
}

func (s *StubSender) Send(ctx context.Context, msg Message) error {
	s.logger.Info("stub sender: would send email", "subject", msg.Subject)
	return nil
}
