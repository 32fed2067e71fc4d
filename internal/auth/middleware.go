package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const ShareTokenHeader = "X-Share-Token"

type Middleware struct {
	tokens *Tokens
}

func NewMiddleware(tokens *Tokens) *Middleware {
	return &Middleware{tokens: tokens}
}

// Authenticate accepts a bearer token, a share token, or both, and rejects
// the request with 401 when neither is valid.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	a := &Context{}

	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		claims, err := m.tokens.ParseUserToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			return unauthorized(c, err)
		}
		a.UserID = claims.Subject
		a.Role = claims.Role
	}

	if raw := c.Get(ShareTokenHeader); raw != "" {
		claims, err := m.tokens.ParseShareToken(raw)
		if err != nil {
			return unauthorized(c, err)
		}
		a.ShareWebsiteID = claims.WebsiteID
	}

	if a.UserID == "" && a.ShareWebsiteID == "" {
		return unauthorized(c, nil)
	}

	c.Locals(localsKey, a)
	return c.Next()
}

func unauthorized(c *fiber.Ctx, err error) error {
	body := fiber.Map{"error": "unauthorized"}
	if err == ErrExpiredToken {
		body["message"] = err.Error()
	}
	return c.Status(fiber.StatusUnauthorized).JSON(body)
}
