package models

import "time"

// Notification types
const (
	NotificationTypeFollowUp       = "follow_up"
	NotificationTypeVisitScheduled = "visit_scheduled"
)

// Notification is a derived reminder. One is created exactly when an
// activity is appended with a next follow-up date; it is never auto-deleted
// and the only permitted mutation is marking it read.
type Notification struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	ClientName    string    `json:"client_name"` // denormalized for display
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	ScheduledDate time.Time `json:"scheduled_date"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}
