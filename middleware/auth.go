package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// Verify guards the ops endpoints with a shared API key. End-user
// authentication lives in the main application, not in this service.
func Verify(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get("X-Api-Key")
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid API key",
			})
		}
		return c.Next()
	}
}
