package notification

import "time"

// SendRequest is the body of POST /notifications/send. The default audience
// is "specific" with explicit id lists, which is what the panel UI sends; the
// other audience tags resolve server-side against the full pools.
type SendRequest struct {
	Audience       string   `json:"audience"`
	UserIDs        []string `json:"userIds"`
	MentorIDs      []string `json:"mentorIds"`
	// IncludeMentors widens an audience-tag send (all/free/pro) with the
	// mentor pool; off by default so an "all users" send never surprises
	// every mentor.
	IncludeMentors bool                   `json:"includeMentors"`
	CustomEmails   string                 `json:"customEmails"`
	Title          string                 `json:"title"`
	Message        string                 `json:"message"`
	Type           string                 `json:"type"`
	Priority       string                 `json:"priority"`
	ActionURL      string                 `json:"actionUrl"`
	ExpiresAt      *time.Time             `json:"expiresAt"`
	Metadata       map[string]interface{} `json:"metadata"`
	SendEmail      bool                   `json:"sendEmail"`
}

// Counts reports the in-app rows inserted. Custom emails never appear here;
// they only show up in EmailOutcome.Total.
type Counts struct {
	Users   int `json:"users"`
	Mentors int `json:"mentors"`
	Total   int `json:"total"`
}

// EmailOutcome reports the best-effort email channel. Error set with Sent=0
// still rides on an HTTP 200 when the notification inserts committed.
type EmailOutcome struct {
	Sent  int    `json:"sent"`
	Total int    `json:"total"`
	Error string `json:"error,omitempty"`
}

// DispatchOutcome aggregates the two independent side effects. Email is nil
// when the channel was not requested, so callers can tell "not attempted"
// from "attempted and sent zero".
type DispatchOutcome struct {
	Counts Counts        `json:"counts"`
	Email  *EmailOutcome `json:"email,omitempty"`
}
