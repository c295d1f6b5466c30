package services

import (
	"context"
	"log"

	"github.com/resend/resend-go/v2"
)

// EmailMessage is one outbound email.
type EmailMessage struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
}

// EmailSender delivers emails through an external provider.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a ResendSender with the given API key and sender
// address.
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send delivers a single email via Resend.
func (s *ResendSender) Send(ctx context.Context, msg EmailMessage) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.ReplyTo != "" {
		params.ReplyTo = msg.ReplyTo
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return err
	}

	log.Printf("[Email] Sent %s to %s (subject: %q)", sent.Id, msg.To, msg.Subject)
	return nil
}

// NoopEmailSender logs sends without delivering. Used when no provider
// credentials are configured.
type NoopEmailSender struct{}

// Send logs the email and drops it.
func (NoopEmailSender) Send(_ context.Context, msg EmailMessage) error {
	log.Printf("[Email] Provider not configured, skipping send to %s (subject: %q)", msg.To, msg.Subject)
	return nil
}
