package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// AllowMethods rejects any method not listed with 405 before the rest of the
// chain runs.
func AllowMethods(methods ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		allowed[m] = struct{}{}
	}
	allowHeader := strings.Join(methods, ", ")

	return func(c *fiber.Ctx) error {
		if _, ok := allowed[c.Method()]; ok {
			return c.Next()
		}
		c.Set(fiber.HeaderAllow, allowHeader)
		return c.Status(fiber.StatusMethodNotAllowed).JSON(fiber.Map{
			"error": "method_not_allowed",
		})
	}
}
