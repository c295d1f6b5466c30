package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/courtier/internal/config"
	"github.com/example/courtier/internal/middleware"
	"github.com/example/courtier/internal/utils"
)

// AuthHandler manages the shared-password admin gate. Success sets an
// HTTP-only, same-site-strict session cookie.
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type loginRequest struct {
	Password string `json:"password"`
}

// Login validates the admin password and issues the session cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !h.passwordValid(req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid password")
	}

	token, err := utils.GenerateSessionToken(h.cfg.SessionSecret, h.cfg.SessionTTL)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create session")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.SessionTTL.Seconds()),
		Secure:   h.cfg.Production(),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.JSON(fiber.Map{"success": true})
}

// Session reports whether the request carries a valid session cookie.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookie)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"authenticated": false})
	}

	if err := utils.ParseSessionToken(h.cfg.SessionSecret, token); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"authenticated": false})
	}

	return c.JSON(fiber.Map{"authenticated": true})
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		Secure:   h.cfg.Production(),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteStrictMode,
	})

	return c.JSON(fiber.Map{"success": true})
}

func (h *AuthHandler) passwordValid(password string) bool {
	if password == "" {
		return false
	}
	if h.cfg.AdminPasswordHash != "" {
		return utils.CheckPassword(h.cfg.AdminPasswordHash, password)
	}
	return utils.CheckSecret(h.cfg.AdminPassword, password)
}
