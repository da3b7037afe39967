package mentor

import (
	"database/sql"
	"time"
)

// Mentor is a platform mentor. Mentors live in their own table with their own
// notification channel; they are not users.
type Mentor struct {
	ID           string         `json:"id" db:"id"`
	Name         string         `json:"name" db:"name"`
	Email        string         `json:"email" db:"email"`
	Expertise    sql.NullString `json:"expertise" db:"expertise"`
	Verified     bool           `json:"verified" db:"verified"`
	Availability sql.NullString `json:"availability" db:"availability"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// Meeting request states use the platform's Spanish taxonomy verbatim; the
// values are stored as-is.
type RequestStatus string

const (
	RequestPending   RequestStatus = "Pendiente"
	RequestAccepted  RequestStatus = "Aceptada"
	RequestRejected  RequestStatus = "Rechazada"
	RequestCompleted RequestStatus = "Completada"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestRejected, RequestCompleted:
		return true
	}
	return false
}

type MeetingRequest struct {
	ID          string         `json:"id" db:"id"`
	MentorID    string         `json:"mentor_id" db:"mentor_id"`
	UserID      sql.NullString `json:"user_id" db:"user_id"`
	UserName    sql.NullString `json:"user_name" db:"user_name"`
	UserEmail   sql.NullString `json:"user_email" db:"user_email"`
	Topic       sql.NullString `json:"topic" db:"topic"`
	Status      RequestStatus  `json:"status" db:"status"`
	RequestedAt time.Time      `json:"requested_at" db:"requested_at"`
	UpdatedAt   sql.NullTime   `json:"updated_at" db:"updated_at"`
}

type UpdateRequestStatusRequest struct {
	Status RequestStatus `json:"status"`
}
