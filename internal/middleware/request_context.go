package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// NewRequestContextMiddleware exposes the transport context to
// handlers that need the raw multipart payload (image uploads).
func NewRequestContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userCtx := c.UserContext()
		if userCtx == nil {
			userCtx = context.Background()
		}

		c.SetUserContext(context.WithValue(userCtx, "fiber", c))
		return c.Next()
	}
}
