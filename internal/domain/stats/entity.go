package stats

import "time"

// Dashboard is the aggregate counts panel shown on the home screen. It is
// cheap enough to recompute but cached briefly to keep the dashboard snappy.
type Dashboard struct {
	TotalUsers             int       `json:"total_users"`
	FreeUsers              int       `json:"free_users"`
	ProUsers               int       `json:"pro_users"`
	VerifiedUsers          int       `json:"verified_users"`
	TotalMentors           int       `json:"total_mentors"`
	PendingMeetingRequests int       `json:"pending_meeting_requests"`
	PendingMiniApps        int       `json:"pending_mini_apps"`
	PendingInstitutions    int       `json:"pending_institutions"`
	ApprovedInstitutions   int       `json:"approved_institutions"`
	GeneratedAt            time.Time `json:"generated_at"`
}
