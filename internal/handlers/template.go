package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/courtier/internal/models"
	"github.com/example/courtier/internal/template"
)

// TemplateHandler manages the singleton template configuration.
type TemplateHandler struct {
	db *gorm.DB
}

// NewTemplateHandler constructs TemplateHandler.
func NewTemplateHandler(db *gorm.DB) *TemplateHandler {
	return &TemplateHandler{db: db}
}

// loadConfig reads the stored config merged with the compiled-in defaults.
// An absent or malformed record yields the defaults.
func loadConfig(db *gorm.DB) (template.Config, error) {
	var settings models.SiteSettings
	if err := db.First(&settings, "id = ?", models.SiteSettingsID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return template.Default(), nil
		}
		return template.Config{}, err
	}
	return template.Merge(settings.TemplateConfig), nil
}

// Get returns the current template configuration, defaults back-filled.
func (h *TemplateHandler) Get(c *fiber.Ctx) error {
	cfg, err := loadConfig(h.db)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": cfg})
}

// Update replaces the stored configuration wholesale. Last writer wins;
// there is no optimistic concurrency token.
func (h *TemplateHandler) Update(c *fiber.Ctx) error {
	var cfg template.Config
	if err := json.Unmarshal(c.Body(), &cfg); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	cfg.NormalizeSections()

	raw, err := json.Marshal(cfg)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to encode config")
	}

	var settings models.SiteSettings
	result := h.db.First(&settings, "id = ?", models.SiteSettingsID)

	if result.Error == gorm.ErrRecordNotFound {
		settings = models.SiteSettings{
			ID:             models.SiteSettingsID,
			TemplateConfig: models.JSONB(raw),
		}
		if err := h.db.Create(&settings).Error; err != nil {
			return err
		}
		return c.JSON(fiber.Map{"success": true, "data": cfg})
	} else if result.Error != nil {
		return result.Error
	}

	settings.TemplateConfig = models.JSONB(raw)
	if err := h.db.Save(&settings).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": cfg})
}
