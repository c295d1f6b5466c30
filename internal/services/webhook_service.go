package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// WebhookService relays JSON payloads to a configured endpoint, typically an
// automation pipeline receiving contact submissions.
type WebhookService struct {
	url    string
	client *http.Client
}

// NewWebhookService creates a WebhookService. An empty URL disables relaying.
func NewWebhookService(url string) *WebhookService {
	return &WebhookService{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether a relay endpoint is configured.
func (s *WebhookService) Enabled() bool {
	return s.url != ""
}

// Relay posts the payload to the configured endpoint.
func (s *WebhookService) Relay(ctx context.Context, payload interface{}) error {
	if s.url == "" {
		log.Println("[Webhook] No endpoint configured, skipping relay")
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
