package user

import (
	"database/sql"
	"time"
)

type AccountType string

const (
	AccountTypeFree AccountType = "free"
	AccountTypePro  AccountType = "pro"
)

// Valid reports whether t is one of the two supported tiers.
func (t AccountType) Valid() bool {
	return t == AccountTypeFree || t == AccountTypePro
}

// User is a platform end user as the panel sees it. Deleted users keep their
// row (soft delete via deleted_at) so historical data stays attributable.
type User struct {
	ID            string         `json:"id" db:"id"`
	Email         string         `json:"email" db:"email"`
	FirstName     sql.NullString `json:"first_name" db:"first_name"`
	LastName      sql.NullString `json:"last_name" db:"last_name"`
	AccountType   AccountType    `json:"account_type" db:"account_type"`
	IsActive      bool           `json:"is_active" db:"is_active"`
	EmailVerified bool           `json:"email_verified" db:"email_verified"`
	BusinessName  sql.NullString `json:"business_name" db:"business_name"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     sql.NullTime   `json:"updated_at" db:"updated_at"`
	LastActive    sql.NullTime   `json:"last_active" db:"last_active"`
	DeletedAt     sql.NullTime   `json:"deleted_at,omitempty" db:"deleted_at"`
}

type UpdateAccountTypeRequest struct {
	AccountType AccountType `json:"account_type"`
}

type ListFilters struct {
	AccountType *AccountType `form:"account_type"`
}
