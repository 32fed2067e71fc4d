package auth

import "github.com/gofiber/fiber/v2"

const localsKey = "auth"

// Context is the authenticated caller of a request: a user, a share token
// holder, or both.
type Context struct {
	UserID         string
	Role           string
	ShareWebsiteID string
}

func (a *Context) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// FromCtx returns the caller stored by the middleware, or nil.
func FromCtx(c *fiber.Ctx) *Context {
	a, _ := c.Locals(localsKey).(*Context)
	return a
}

// SetForTest stores a caller on the request as the middleware would.
func SetForTest(c *fiber.Ctx, a *Context) {
	c.Locals(localsKey, a)
}
