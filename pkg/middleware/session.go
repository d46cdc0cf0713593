package middleware

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LocalsSessionKey is where the session id lands in the request Locals.
const LocalsSessionKey = "sessionID"

// SessionRequired rejects requests that carry no session cookie. The token is
// treated as an opaque string: any non-empty value passes.
func SessionRequired(cookieName string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Cookies(cookieName)
		if sessionID == "" {
			logger.Warn("Missing session cookie", zap.String("path", c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		c.Locals(LocalsSessionKey, sessionID)
		return c.Next()
	}
}

// SessionFromCtx returns the session id stored by SessionRequired, or ""
// when the request went through no session guard.
func SessionFromCtx(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocalsSessionKey).(string); ok {
		return v
	}
	return ""
}
