package institution

import (
	"database/sql"
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Institution is a partnership request from an educational institution.
type Institution struct {
	ID           string         `json:"id" db:"id"`
	Name         string         `json:"name" db:"name"`
	ContactName  sql.NullString `json:"contact_name" db:"contact_name"`
	ContactEmail sql.NullString `json:"contact_email" db:"contact_email"`
	Status       Status         `json:"status" db:"status"`
	MaxUsers     sql.NullInt32  `json:"max_users" db:"max_users"`
	ApprovedAt   sql.NullTime   `json:"approved_at" db:"approved_at"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    sql.NullTime   `json:"updated_at" db:"updated_at"`
}

// UpdateRequest carries the mutable fields; nil means leave unchanged.
type UpdateRequest struct {
	Status     Status     `json:"status"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	MaxUsers   *int32     `json:"max_users,omitempty"`
}
