package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientAddr extracts the originating client address: the first entry of
// X-Forwarded-For when present (the service runs behind a proxy in
// production), otherwise the connection address. The result feeds the
// identity hasher and geo resolver; it is never persisted raw.
func ClientAddr(c *fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		if first, _, found := strings.Cut(fwd, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}
	return c.IP()
}
