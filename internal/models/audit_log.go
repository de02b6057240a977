package models

import "time"

type AuditLog struct {
	ID         int       `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	Action     string    `json:"action" db:"action"` // create, update, delete
	EntityType string    `json:"entity_type" db:"entity_type"`
	EntityID   string    `json:"entity_id" db:"entity_id"`
	OldValue   *string   `json:"old_value,omitempty" db:"old_value"` // JSON snapshot before
	NewValue   *string   `json:"new_value,omitempty" db:"new_value"` // JSON snapshot after
	IPAddress  *string   `json:"ip_address,omitempty" db:"ip_address"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
