package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/courtier/internal/models"
	"github.com/example/courtier/internal/utils"
)

// AdminHandler serves the dashboard endpoints of the admin panel.
type AdminHandler struct {
	db *gorm.DB
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{db: db}
}

// DashboardStats returns aggregate statistics for the admin dashboard.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	var totalBrokers int64
	if err := h.db.Model(&models.Broker{}).Count(&totalBrokers).Error; err != nil {
		return err
	}

	var totalRequests int64
	if err := h.db.Model(&models.PdfRequest{}).Count(&totalRequests).Error; err != nil {
		return err
	}

	// Guide requests per broker.
	type brokerCount struct {
		BrokerID string `json:"broker_id"`
		Count    int64  `json:"count"`
	}
	var perBroker []brokerCount
	if err := h.db.Model(&models.PdfRequest{}).
		Select("broker_id, count(*) as count").
		Group("broker_id").
		Scan(&perBroker).Error; err != nil {
		return err
	}

	requestsByBroker := make(map[string]int64)
	for _, bc := range perBroker {
		requestsByBroker[bc.BrokerID] = bc.Count
	}

	var recent []models.PdfRequest
	if err := h.db.Preload("Broker").
		Order("created_at desc").
		Limit(5).
		Find(&recent).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"total_brokers":      totalBrokers,
			"total_pdf_requests": totalRequests,
			"requests_by_broker": requestsByBroker,
			"recent_requests":    recent,
		},
	})
}

// ListPdfRequests returns the guide-request lead log with pagination and an
// optional broker filter.
func (h *AdminHandler) ListPdfRequests(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.PdfRequest{})

	if brokerID := c.Query("broker_id"); brokerID != "" {
		query = query.Where("broker_id = ?", brokerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var requests []models.PdfRequest
	if err := query.Preload("Broker").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&requests).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    requests,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}
