package models

import "time"

// VisitRecord is one visit-typed activity flattened out of a client's
// history for dashboard display
type VisitRecord struct {
	ClientID   string    `json:"client_id"`
	ClientName string    `json:"client_name"`
	Date       time.Time `json:"date"`
	Notes      string    `json:"notes"`
	CreatedBy  string    `json:"created_by"`
}

// DailyVisitBucket is one calendar day of the 30-day visit histogram
type DailyVisitBucket struct {
	Date  string `json:"date"` // 2006-01-02, local calendar day
	Count int    `json:"count"`
}

// DashboardKPIs is the aggregate shape served by the stats endpoint
type DashboardKPIs struct {
	TotalClients       int                `json:"total_clients"`
	ClientsInProgress  int                `json:"clients_in_progress"`
	ClosedClients      int                `json:"closed_clients"`
	NewClientsThisMonth int               `json:"new_clients_this_month"`
	VisitsThisMonth    int                `json:"visits_this_month"`
	VisitsLastMonth    int                `json:"visits_last_month"`
	MonthlyChangePct   float64            `json:"monthly_change_pct"` // 0 when last month had no visits
	DailyVisits        []DailyVisitBucket `json:"daily_visits"`       // 30 entries, oldest first
	RecentVisits       []VisitRecord      `json:"recent_visits"`      // up to 5, newest first
}
