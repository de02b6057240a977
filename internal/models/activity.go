package models

import "time"

// Activity types
const (
	ActivityTypeVisit    = "visit"
	ActivityTypeFollowUp = "follow_up"
	ActivityTypeNote     = "note"
)

// Activity is one logged interaction against a client. Entries are
// append-only: never edited or deleted once written.
type Activity struct {
	ID               string     `json:"id"`
	ClientID         string     `json:"client_id"`
	Type             string     `json:"type"`
	Date             time.Time  `json:"date"`
	Notes            string     `json:"notes"`
	CreatedBy        string     `json:"created_by"`
	NextFollowUpDate *time.Time `json:"next_follow_up_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// AppendActivityRequest represents the request body for logging an activity.
// The id is assigned server-side.
type AppendActivityRequest struct {
	Type             string     `json:"type"`
	Date             time.Time  `json:"date"`
	Notes            string     `json:"notes"`
	NextFollowUpDate *time.Time `json:"next_follow_up_date,omitempty"`
}

// ValidActivityType reports whether t is one of the known activity types
func ValidActivityType(t string) bool {
	switch t {
	case ActivityTypeVisit, ActivityTypeFollowUp, ActivityTypeNote:
		return true
	}
	return false
}
