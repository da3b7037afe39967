package notification

import "time"

// User and mentor notifications are the same logical event persisted into two
// tables with divergent shapes (column names, read flag, metadata key). The
// two record types are kept separate on purpose; the mapping happens at the
// persistence boundary, not in a unified struct.

const (
	TypeGeneral = "general"

	PriorityNormal = "normal"
)

// UserNotification is one row for the notifications table.
type UserNotification struct {
	UserID    string                 `json:"user_id" db:"user_id"`
	Title     string                 `json:"title" db:"title"`
	Message   string                 `json:"message" db:"message"`
	Type      string                 `json:"type" db:"type"`
	Priority  string                 `json:"priority" db:"priority"`
	ActionURL *string                `json:"action_url,omitempty" db:"action_url"`
	ExpiresAt *time.Time             `json:"expires_at,omitempty" db:"expires_at"`
	Metadata  map[string]interface{} `json:"metadata" db:"metadata"`
	Read      bool                   `json:"read" db:"read"`
}

// MentorNotification is one row for the mentor_notifications table. Note the
// different column names: mentor_id, data, is_read. The mentor taxonomy has
// no "general" type, so that type is remapped before rows are built.
type MentorNotification struct {
	MentorID string                 `json:"mentor_id" db:"mentor_id"`
	Title    string                 `json:"title" db:"title"`
	Message  string                 `json:"message" db:"message"`
	Type     string                 `json:"type" db:"type"`
	Data     map[string]interface{} `json:"data" db:"data"`
	IsRead   bool                   `json:"is_read" db:"is_read"`
}
