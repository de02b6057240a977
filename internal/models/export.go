package models

import "time"

// Export records one generated client spreadsheet
type Export struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	ExportedBy  string    `json:"exported_by"` // user id
	ClientCount int       `json:"client_count"`
	Filters     string    `json:"filters"` // active filters, JSON
	CreatedAt   time.Time `json:"created_at"`
}

// CreateExportRequest represents the request body for generating an export
type CreateExportRequest struct {
	Status    string `json:"status,omitempty"`
	Type      string `json:"type,omitempty"`
	Area      string `json:"area,omitempty"`
	ViewingAs string `json:"viewing_as,omitempty"` // admin impersonation scope
}

// ExportResponse carries the generated artifact back to the caller
type ExportResponse struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        string `json:"data"` // base64 xlsx payload
	ClientCount int    `json:"client_count"`
}
