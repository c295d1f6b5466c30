package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/courtier/internal/config"
	"github.com/example/courtier/internal/handlers"
	"github.com/example/courtier/internal/middleware"
	"github.com/example/courtier/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	notifier := services.NewNotifier(cfg)

	authHandler := handlers.NewAuthHandler(cfg)
	brokerHandler := handlers.NewBrokerHandler(db)
	templateHandler := handlers.NewTemplateHandler(db)
	pageHandler := handlers.NewPageHandler(db)
	contactHandler := handlers.NewContactHandler(db, notifier)
	pdfHandler := handlers.NewPDFHandler(db, notifier)
	adminHandler := handlers.NewAdminHandler(db)

	// Token-keyed guide download lives at the root so shared links stay short.
	app.Get("/pdf/:token", pdfHandler.Download)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Get("/session", authHandler.Session)
	auth.Post("/logout", authHandler.Logout)

	// Public routes
	api.Get("/pages/:slug", pageHandler.Get)
	api.Get("/template", templateHandler.Get)
	api.Post("/contact", contactHandler.Submit)
	api.Post("/pdf-request", pdfHandler.RequestGuide)

	// Admin routes
	protected := api.Group("", middleware.AdminAuth(cfg))

	protected.Get("/brokers", brokerHandler.List)
	protected.Post("/brokers", brokerHandler.Create)
	protected.Get("/brokers/:id", brokerHandler.Get)
	protected.Put("/brokers/:id", brokerHandler.Update)
	protected.Delete("/brokers/:id", brokerHandler.Delete)
	protected.Post("/brokers/:id/pdf", brokerHandler.AttachPDF)

	protected.Put("/template", templateHandler.Update)

	admin := protected.Group("/admin")
	admin.Get("/stats", adminHandler.DashboardStats)
	admin.Get("/pdf-requests", adminHandler.ListPdfRequests)
}
