package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/courtier/internal/models"
	"github.com/example/courtier/internal/utils"
)

// BrokerHandler manages broker CRUD endpoints for the admin panel.
type BrokerHandler struct {
	db *gorm.DB
}

// NewBrokerHandler constructs BrokerHandler.
func NewBrokerHandler(db *gorm.DB) *BrokerHandler {
	return &BrokerHandler{db: db}
}

// validateBroker checks the required-field set and reports the first missing
// field by name.
func validateBroker(b *models.Broker) error {
	required := []struct {
		name  string
		value string
	}{
		{"name", b.Name},
		{"slug", b.Slug},
		{"company", b.Company},
		{"phone", b.Phone},
		{"email", b.Email},
	}

	for _, field := range required {
		if field.value == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Missing required field: "+field.name)
		}
	}
	return nil
}

// List returns all brokers, newest first.
func (h *BrokerHandler) List(c *fiber.Ctx) error {
	var brokers []models.Broker
	if err := h.db.Order("created_at desc").Find(&brokers).Error; err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": brokers})
}

// Create persists a new broker.
func (h *BrokerHandler) Create(c *fiber.Ctx) error {
	var payload models.Broker
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validateBroker(&payload); err != nil {
		return err
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// Get returns a single broker by ID.
func (h *BrokerHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var broker models.Broker
	if err := h.db.First(&broker, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "broker not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": broker})
}

// Update replaces a broker's editable fields and bumps the updated
// timestamp. The PDF fields are managed through AttachPDF and survive
// payloads that omit them.
func (h *BrokerHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var broker models.Broker
	if err := h.db.First(&broker, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "broker not found")
		}
		return err
	}

	pdfURL, pdfToken, createdAt := broker.PDFURL, broker.PDFToken, broker.CreatedAt

	if err := c.BodyParser(&broker); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := validateBroker(&broker); err != nil {
		return err
	}

	broker.ID = id
	broker.PDFURL = pdfURL
	broker.PDFToken = pdfToken
	broker.CreatedAt = createdAt
	if err := h.db.Save(&broker).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": broker})
}

// Delete removes a broker. This is a hard delete; lead history and uploaded
// files are intentionally left behind.
func (h *BrokerHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Broker{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type attachPDFRequest struct {
	PDFURL string `json:"pdf_url"`
}

// AttachPDF records an uploaded guide file and rotates the access token,
// invalidating previously shared links.
func (h *BrokerHandler) AttachPDF(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req attachPDFRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.PDFURL == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing required field: pdf_url")
	}

	var broker models.Broker
	if err := h.db.First(&broker, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "broker not found")
		}
		return err
	}

	token, err := utils.GenerateAccessToken()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate access token")
	}

	broker.PDFURL = req.PDFURL
	broker.PDFToken = token
	if err := h.db.Save(&broker).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"pdf_url":   broker.PDFURL,
		"pdf_token": broker.PDFToken,
	}})
}
