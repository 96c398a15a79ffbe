package middleware

import (
	"crypto/subtle"

	"github.com/emberwall/emberwall-backend/internal/config"
	"github.com/emberwall/emberwall-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired gates the moderation console behind a shared token. The
// board has no accounts, so the token is the only admin credential; when it
// is unset the console is disabled entirely.
func AdminRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.AdminToken == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.Err("Admin console is disabled"))
		}
		provided := c.Get("X-Admin-Token")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(cfg.AdminToken)) != 1 {
			return c.Status(fiber.StatusForbidden).JSON(dto.Err("Admin access required"))
		}
		return c.Next()
	}
}
