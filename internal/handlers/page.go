package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/courtier/internal/composer"
	"github.com/example/courtier/internal/models"
)

// PageHandler serves composed landing pages to the public frontend, which
// statically regenerates them on an interval.
type PageHandler struct {
	db *gorm.DB
}

// NewPageHandler constructs PageHandler.
func NewPageHandler(db *gorm.DB) *PageHandler {
	return &PageHandler{db: db}
}

// Get composes the landing page for one broker slug.
func (h *PageHandler) Get(c *fiber.Ctx) error {
	slug := c.Params("slug")

	var broker models.Broker
	if err := h.db.First(&broker, "slug = ?", slug).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "broker not found")
		}
		return err
	}

	cfg, err := loadConfig(h.db)
	if err != nil {
		return err
	}

	page := composer.Render(broker, cfg)

	c.Set(fiber.HeaderCacheControl, "public, max-age=60")
	return c.JSON(fiber.Map{"success": true, "data": page})
}
