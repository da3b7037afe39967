package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// TypeAdmin is the only credential type the panel issues.
const TypeAdmin = "admin"

// Claims is the payload of an admin credential. Field names match the wire
// format consumed by the panel UI and the main application's cache endpoint.
type Claims struct {
	AdminID  string `json:"adminId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Type     string `json:"type"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the credential carries the admin type tag.
func (c *Claims) IsAdmin() bool {
	return c.Type == TypeAdmin
}
