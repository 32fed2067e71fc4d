package auth

import "github.com/golang-jwt/jwt/v5"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserClaims is the payload of a bearer token.
type UserClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role,omitempty"`
}

// ShareClaims is the payload of a share token. It grants read access to one
// website and to nothing else.
type ShareClaims struct {
	jwt.RegisteredClaims
	WebsiteID string `json:"websiteId"`
}
