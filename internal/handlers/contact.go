package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/courtier/internal/models"
	"github.com/example/courtier/internal/services"
)

// ContactNotifier dispatches the broker notification for one contact
// submission. Satisfied by services.Notifier.
type ContactNotifier interface {
	ContactForm(broker models.Broker, sub services.ContactSubmission)
}

// ContactHandler accepts visitor contact-form submissions.
type ContactHandler struct {
	db       *gorm.DB
	notifier ContactNotifier
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(db *gorm.DB, notifier ContactNotifier) *ContactHandler {
	return &ContactHandler{db: db, notifier: notifier}
}

type contactRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	BrokerSlug string `json:"broker_slug"`
}

func (r *contactRequest) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"name", r.Name},
		{"email", r.Email},
		{"message", r.Message},
		{"broker_slug", r.BrokerSlug},
	}
	for _, field := range required {
		if field.value == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Missing required field: "+field.name)
		}
	}
	return nil
}

// Submit records nothing and responds immediately; the broker notification
// email and the webhook relay run in the background and their outcome never
// reaches the visitor.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := req.validate(); err != nil {
		return err
	}

	var broker models.Broker
	if err := h.db.First(&broker, "slug = ?", req.BrokerSlug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "broker not found")
		}
		return err
	}

	h.notifier.ContactForm(broker, services.ContactSubmission{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		BrokerSlug: req.BrokerSlug,
	})

	return c.JSON(fiber.Map{"success": true, "message": "Submission received"})
}
