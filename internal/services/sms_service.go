package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// SMSSender delivers text messages through an external provider.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// TwilioSender sends SMS through the Twilio Messages API.
type TwilioSender struct {
	accountSID string
	authToken  string
	from       string
	client     *http.Client
}

// NewTwilioSender creates a TwilioSender for the given account.
func NewTwilioSender(accountSID, authToken, from string) *TwilioSender {
	return &TwilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Send posts one message to the Twilio REST API.
func (s *TwilioSender) Send(ctx context.Context, to, body string) error {
	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)

	form := url.Values{
		"To":   {to},
		"From": {s.from},
		"Body": {body},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("twilio returned status %d", resp.StatusCode)
	}

	log.Printf("[SMS] Sent to %s", to)
	return nil
}

// NoopSMSSender logs messages without delivering. Used when no provider
// credentials are configured.
type NoopSMSSender struct{}

// Send logs the message and drops it.
func (NoopSMSSender) Send(_ context.Context, to, body string) error {
	log.Printf("[SMS] Provider not configured, skipping send")
	log.Printf("[SMS] Would send to: %s", to)
	log.Printf("[SMS] Message: %s", body)
	return nil
}
