package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/courtier/internal/config"
	"github.com/example/courtier/internal/utils"
)

// SessionCookie names the HTTP-only cookie holding the admin session token.
const SessionCookie = "courtier_admin_session"

// AdminAuth guards admin endpoints behind the session cookie set by the
// login handler.
func AdminAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}

		if err := utils.ParseSessionToken(cfg.SessionSecret, token); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid session")
		}

		return c.Next()
	}
}
