package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/example/courtier/internal/config"
	"github.com/example/courtier/internal/models"
	"github.com/example/courtier/internal/utils"
)

// Notifier dispatches lead notifications. Every send is fire-and-forget: the
// HTTP response to the visitor is written before delivery completes, and
// delivery failures are logged, never surfaced.
type Notifier struct {
	email   EmailSender
	sms     SMSSender
	webhook *WebhookService

	devTestEmail string
	production   bool
}

// NewNotifier wires the configured providers. Missing credentials degrade to
// logging no-op senders rather than failing requests.
func NewNotifier(cfg *config.Config) *Notifier {
	var email EmailSender = NoopEmailSender{}
	if cfg.ResendAPIKey != "" {
		email = NewResendSender(cfg.ResendAPIKey, cfg.MailFrom)
	}

	var sms SMSSender = NoopSMSSender{}
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFromNumber != "" {
		sms = NewTwilioSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	}

	return &Notifier{
		email:        email,
		sms:          sms,
		webhook:      NewWebhookService(cfg.ContactWebhookURL),
		devTestEmail: cfg.DevTestEmail,
		production:   cfg.Production(),
	}
}

// ContactSubmission is a visitor contact-form payload.
type ContactSubmission struct {
	Name       string
	Email      string
	Phone      string
	Message    string
	BrokerSlug string
}

// GuideRequest is a visitor asking for the PDF guide by SMS.
type GuideRequest struct {
	FirstName string
	LastName  string
	Phone     string
}

// ContactForm emails the broker about a new contact submission and relays
// the payload to the configured webhook. Returns immediately; both sends run
// in the background.
func (n *Notifier) ContactForm(broker models.Broker, sub ContactSubmission) {
	payload := map[string]interface{}{
		"name":         sub.Name,
		"email":        sub.Email,
		"phone":        sub.Phone,
		"message":      sub.Message,
		"broker_slug":  sub.BrokerSlug,
		"broker_name":  broker.Name,
		"broker_email": broker.Email,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	}

	go func() {
		if err := n.webhook.Relay(context.Background(), payload); err != nil {
			log.Printf("[Webhook] Contact relay failed: %v", err)
		}
	}()

	to := broker.Email
	subject := fmt.Sprintf("Nouvelle demande de %s - %s", sub.Name, broker.Company)
	body := contactEmailHTML(broker, sub)

	if !n.production && n.devTestEmail != "" {
		to = n.devTestEmail
		subject = fmt.Sprintf("[DEV TEST - %s] Nouvelle demande de %s", broker.Name, sub.Name)
		body = devBanner(broker.Email) + body
	}

	go func() {
		msg := EmailMessage{To: to, ReplyTo: sub.Email, Subject: subject, HTML: body}
		if err := n.email.Send(context.Background(), msg); err != nil {
			log.Printf("[Email] Contact notification failed: %v", err)
		}
	}()
}

// PDFGuide texts the public guide link to the requester and emails the
// broker about the lead. Returns immediately; both sends run in the
// background. The requester's phone number is normalized before dispatch.
func (n *Notifier) PDFGuide(broker models.Broker, req GuideRequest, publicPDFURL string) {
	smsBody := fmt.Sprintf(
		"Salut! Ceci est un message automatisé de la part de %s. Voici le lien pour voir le PDF: %s",
		broker.Name, publicPDFURL,
	)
	to := utils.NormalizePhone(req.Phone)

	go func() {
		if err := n.sms.Send(context.Background(), to, smsBody); err != nil {
			log.Printf("[SMS] Guide link send failed: %v", err)
		}
	}()

	requester := strings.TrimSpace(req.FirstName + " " + req.LastName)
	to = broker.Email
	subject := fmt.Sprintf("Nouveau téléchargement de guide - %s", requester)
	body := guideEmailHTML(broker, requester, req.Phone)

	if !n.production && n.devTestEmail != "" {
		to = n.devTestEmail
		subject = fmt.Sprintf("[DEV TEST - %s] %s", broker.Name, subject)
		body = devBanner(broker.Email) + body
	}

	go func() {
		msg := EmailMessage{To: to, Subject: subject, HTML: body}
		if err := n.email.Send(context.Background(), msg); err != nil {
			log.Printf("[Email] Guide lead notification failed: %v", err)
		}
	}()
}

func contactEmailHTML(broker models.Broker, sub ContactSubmission) string {
	color := broker.PrimaryColor
	if color == "" {
		color = "#1e40af"
	}

	phoneCell := "—"
	if sub.Phone != "" {
		phoneCell = fmt.Sprintf(`<a href="tel:%s">%s</a>`, html.EscapeString(sub.Phone), html.EscapeString(sub.Phone))
	}

	message := strings.ReplaceAll(html.EscapeString(sub.Message), "\n", "<br>")

	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: %s;">Nouvelle demande de contact</h2>
  <p>Vous avez reçu une nouvelle demande depuis votre page de destination.</p>
  <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
    <tr>
      <td style="padding: 10px; border-bottom: 1px solid #eee; font-weight: bold; width: 120px;">Nom</td>
      <td style="padding: 10px; border-bottom: 1px solid #eee;">%s</td>
    </tr>
    <tr>
      <td style="padding: 10px; border-bottom: 1px solid #eee; font-weight: bold;">Courriel</td>
      <td style="padding: 10px; border-bottom: 1px solid #eee;"><a href="mailto:%s">%s</a></td>
    </tr>
    <tr>
      <td style="padding: 10px; border-bottom: 1px solid #eee; font-weight: bold;">Téléphone</td>
      <td style="padding: 10px; border-bottom: 1px solid #eee;">%s</td>
    </tr>
    <tr>
      <td style="padding: 10px; border-bottom: 1px solid #eee; font-weight: bold; vertical-align: top;">Message</td>
      <td style="padding: 10px; border-bottom: 1px solid #eee;">%s</td>
    </tr>
  </table>
  <p style="color: #666; font-size: 12px;">Soumis le %s</p>
</div>`,
		color,
		html.EscapeString(sub.Name),
		html.EscapeString(sub.Email), html.EscapeString(sub.Email),
		phoneCell,
		message,
		time.Now().Format("2006-01-02 15:04"),
	)
}

func guideEmailHTML(broker models.Broker, requester, phone string) string {
	color := broker.PrimaryColor
	if color == "" {
		color = "#1e40af"
	}

	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: %s;">Nouveau téléchargement de guide PDF</h2>
  <p>Un visiteur a demandé à recevoir votre guide PDF par SMS.</p>
  <table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
    <tr>
      <td style="padding: 10px; border-bottom: 1px solid #eee; font-weight: bold; width: 120px;">Nom</td>
      <td style="padding: 10px; border-bottom: 1px solid #eee;">%s</td>
    </tr>
    <tr>
      <td style="padding: 10px; border-bottom: 1px solid #eee; font-weight: bold;">Téléphone</td>
      <td style="padding: 10px; border-bottom: 1px solid #eee;"><a href="tel:%s">%s</a></td>
    </tr>
    <tr>
      <td style="padding: 10px; border-bottom: 1px solid #eee; font-weight: bold;">Date</td>
      <td style="padding: 10px; border-bottom: 1px solid #eee;">%s</td>
    </tr>
  </table>
  <p style="color: #666; font-size: 14px;">Ce prospect a montré de l'intérêt pour votre guide. C'est une bonne occasion de faire un suivi!</p>
  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #999;">
    <p>Ceci est un message automatisé de votre plateforme de courtage.</p>
  </div>
</div>`,
		color,
		html.EscapeString(requester),
		html.EscapeString(phone), html.EscapeString(phone),
		time.Now().Format("2006-01-02 15:04"),
	)
}

func devBanner(realRecipient string) string {
	return fmt.Sprintf(
		`<div style="background: #fef3c7; padding: 10px; margin-bottom: 20px; border-radius: 4px;"><strong>DEV MODE:</strong> This would be sent to %s in production</div>`,
		html.EscapeString(realRecipient),
	)
}
