package admin

import "time"

// AdminUser is the authenticated actor behind every panel action. It is
// loaded fresh from the store on verification; the credential alone is never
// trusted for active-status.
type AdminUser struct {
	ID        string `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	Email     string `json:"email" db:"email"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	IsActive  bool   `json:"is_active" db:"is_active"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      AdminUser
}
