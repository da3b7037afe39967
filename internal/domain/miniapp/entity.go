package miniapp

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

// MiniApp is a community-submitted mini application awaiting review.
type MiniApp struct {
	ID          string         `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Description sql.NullString `json:"description" db:"description"`
	AuthorID    sql.NullString `json:"author_id" db:"author_id"`
	AuthorName  sql.NullString `json:"author_name" db:"author_name"`
	URL         sql.NullString `json:"url" db:"url"`
	Status      Status         `json:"status" db:"status"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   sql.NullTime   `json:"updated_at" db:"updated_at"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status"`
}
