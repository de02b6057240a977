package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"gascrm-backend/internal/models"
	"gascrm-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ClientReportData holds one client plus the derived figures shown on reports
type ClientReportData struct {
	Client        *models.Client
	TotalVisits   int
	TotalContacts int
	PendingFollow int
}

// ReportService renders the client portfolio as printable artifacts
type ReportService struct {
	clientService *ClientService
	activitySvc   *ActivityService
}

func NewReportService(clientService *ClientService, activitySvc *ActivityService) *ReportService {
	return &ReportService{
		clientService: clientService,
		activitySvc:   activitySvc,
	}
}

// GetClientReportData fetches the visible clients with their histories and
// precomputes the per-client report figures
func (s *ReportService) GetClientReportData(ctx context.Context, current *models.User, viewingAsID, status, clientType, area string) ([]*ClientReportData, error) {
	clients, err := s.clientService.ListVisible(ctx, current, viewingAsID, status, clientType, area)
	if err != nil {
		return nil, err
	}

	reportData := make([]*ClientReportData, 0, len(clients))
	for _, c := range clients {
		history, err := s.activitySvc.activityRepo.ListByClient(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load history for %s: %w", c.ID, err)
		}
		c.ActivityHistory = history

		data := &ClientReportData{Client: c, TotalContacts: len(history)}
		for _, a := range history {
			if a.Type == models.ActivityTypeVisit {
				data.TotalVisits++
			}
			if a.NextFollowUpDate != nil && a.NextFollowUpDate.After(timeutil.Now()) {
				data.PendingFollow++
			}
		}
		reportData = append(reportData, data)
	}
	return reportData, nil
}

// GenerateClientsPDF renders the portfolio as a landscape table
func (s *ReportService) GenerateClientsPDF(clients []*ClientReportData) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "") // Landscape for more columns
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(277, 12, "Gas CRM - Reporte de Cartera de Clientes", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(277, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Summary Box
	var totalVisits, pending int
	for _, c := range clients {
		totalVisits += c.TotalVisits
		pending += c.PendingFollow
	}
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(277, 8, "Resumen", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(92, 8, fmt.Sprintf("Clientes: %d", len(clients)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(92, 8, fmt.Sprintf("Visitas registradas: %d", totalVisits), "1", 0, "C", false, 0, "")
	pdf.CellFormat(93, 8, fmt.Sprintf("Seguimientos pendientes: %d", pending), "1", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Table header
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Nombre", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Tipo", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Estatus", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Telefono", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Zona", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Vendedor", "1", 0, "C", true, 0, "")
	pdf.CellFormat(18, 7, "Visitas", "1", 0, "C", true, 0, "")
	pdf.CellFormat(42, 7, "Ultima visita", "1", 1, "C", true, 0, "")

	// Table rows
	pdf.SetFont("Arial", "", 9)
	for i, data := range clients {
		c := data.Client
		// Alternate row colors
		if i%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(245, 245, 245)
		}

		name := c.Name
		if len(name) > 26 {
			name = name[:23] + "..."
		}
		assignee := c.AssignedTo
		if len(assignee) > 18 {
			assignee = assignee[:15] + "..."
		}
		lastVisit := "-"
		if c.LastVisit != nil {
			lastVisit = timeutil.ToCST(*c.LastVisit).Format("02-Jan-2006")
		}

		pdf.CellFormat(12, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", true, 0, "")
		pdf.CellFormat(55, 6, name, "1", 0, "L", true, 0, "")
		pdf.CellFormat(25, 6, c.Type, "1", 0, "C", true, 0, "")
		pdf.CellFormat(25, 6, c.Status, "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 6, c.Phone, "1", 0, "C", true, 0, "")
		pdf.CellFormat(30, 6, c.Area, "1", 0, "C", true, 0, "")
		pdf.CellFormat(40, 6, assignee, "1", 0, "L", true, 0, "")
		pdf.CellFormat(18, 6, fmt.Sprintf("%d", data.TotalVisits), "1", 0, "C", true, 0, "")
		pdf.CellFormat(42, 6, lastVisit, "1", 1, "C", true, 0, "")
	}

	var buf bytes.Buffer
	err := pdf.Output(&buf)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateClientsCSV renders the same portfolio as CSV
func (s *ReportService) GenerateClientsCSV(clients []*ClientReportData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// Header
	w.Write([]string{
		"#", "Nombre", "Tipo", "Estatus", "Direccion", "Telefono", "Correo",
		"Zona", "Vendedor", "Visitas", "Contactos", "Seguimientos pendientes", "Ultima visita",
	})

	// Data rows
	for i, data := range clients {
		c := data.Client
		lastVisit := ""
		if c.LastVisit != nil {
			lastVisit = timeutil.ToCST(*c.LastVisit).Format(timeutil.DateLayout)
		}
		w.Write([]string{
			fmt.Sprintf("%d", i+1),
			c.Name,
			c.Type,
			c.Status,
			c.Address,
			c.Phone,
			c.Email,
			c.Area,
			c.AssignedTo,
			fmt.Sprintf("%d", data.TotalVisits),
			fmt.Sprintf("%d", data.TotalContacts),
			fmt.Sprintf("%d", data.PendingFollow),
			lastVisit,
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
