package models

import "time"

// Client types (kind of LP-gas account)
const (
	ClientTypeResidential = "residential"
	ClientTypeRestaurant  = "restaurant"
	ClientTypeCommercial  = "commercial"
	ClientTypeFoodTruck   = "food_truck"
	ClientTypeForklift    = "forklift"
)

// Client pipeline statuses
const (
	ClientStatusNew        = "new"
	ClientStatusInProgress = "in_progress"
	ClientStatusClosed     = "closed"
)

// Areas is the fixed municipality list clients are assigned to
var Areas = []string{
	"Tlajomulco",
	"Tlaquepaque",
	"Tonalá",
	"Zapopan",
	"Guadalajara",
	"El Salto",
	"Chapala",
	"Ixtlahuacán",
}

type Client struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Type           string     `json:"type"`
	Status         string     `json:"status"`
	Address        string     `json:"address"`
	Phone          string     `json:"phone"`
	Email          string     `json:"email"`
	AssignedToID   string     `json:"assigned_to_id"` // stable user id, authoritative for visibility
	AssignedTo     string     `json:"assigned_to"`    // display name cache only
	Area           string     `json:"area"`
	HasCredit      bool       `json:"has_credit"`
	CreditDays     *int       `json:"credit_days,omitempty"` // meaningful only when has_credit
	HasDiscount    bool       `json:"has_discount"`
	DiscountAmount *float64   `json:"discount_amount,omitempty"` // meaningful only when has_discount
	LastVisit      *time.Time `json:"last_visit,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// ActivityHistory is populated by the service layer when a caller needs
	// the embedded history (dashboard aggregation, client detail, exports).
	ActivityHistory []*Activity `json:"activity_history,omitempty"`
}

// CreateClientRequest represents the request body for creating a client
type CreateClientRequest struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Status         string   `json:"status"`
	Address        string   `json:"address"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	AssignedToID   string   `json:"assigned_to_id"`
	Area           string   `json:"area"`
	HasCredit      bool     `json:"has_credit"`
	CreditDays     *int     `json:"credit_days,omitempty"`
	HasDiscount    bool     `json:"has_discount"`
	DiscountAmount *float64 `json:"discount_amount,omitempty"`
}

// UpdateClientRequest represents the request body for updating a client
type UpdateClientRequest struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	Status         string   `json:"status"`
	Address        string   `json:"address"`
	Phone          string   `json:"phone"`
	Email          string   `json:"email"`
	AssignedToID   string   `json:"assigned_to_id"`
	Area           string   `json:"area"`
	HasCredit      bool     `json:"has_credit"`
	CreditDays     *int     `json:"credit_days,omitempty"`
	HasDiscount    bool     `json:"has_discount"`
	DiscountAmount *float64 `json:"discount_amount,omitempty"`
}

// ValidClientType reports whether t is one of the known client types
func ValidClientType(t string) bool {
	switch t {
	case ClientTypeResidential, ClientTypeRestaurant, ClientTypeCommercial,
		ClientTypeFoodTruck, ClientTypeForklift:
		return true
	}
	return false
}

// ValidClientStatus reports whether s is one of the known pipeline statuses
func ValidClientStatus(s string) bool {
	switch s {
	case ClientStatusNew, ClientStatusInProgress, ClientStatusClosed:
		return true
	}
	return false
}
