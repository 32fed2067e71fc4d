package middleware

import (
	"website-stats-service/internal/platform/validation"

	"github.com/gofiber/fiber/v2"
)

const validatedKey = "validated_request"

// Schema binds the request for one method and checks it. The returned value
// is made available to later handlers through Validated.
type Schema func(c *fiber.Ctx) (any, error)

// Validate runs the schema registered for the request method. Methods without
// a schema pass through untouched.
func Validate(schemas map[string]Schema) fiber.Handler {
	return func(c *fiber.Ctx) error {
		schema, ok := schemas[c.Method()]
		if !ok {
			return c.Next()
		}

		v, err := schema(c)
		if err != nil {
			if fields, ok := validation.FieldErrors(err); ok {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error":   "validation_error",
					"message": "request validation failed",
					"fields":  fields,
				})
			}
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error":   "validation_error",
				"message": err.Error(),
			})
		}

		c.Locals(validatedKey, v)
		return c.Next()
	}
}

// Validated returns the value bound by Validate.
func Validated[T any](c *fiber.Ctx) (T, bool) {
	v, ok := c.Locals(validatedKey).(T)
	return v, ok
}
