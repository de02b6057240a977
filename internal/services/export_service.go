package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gascrm-backend/internal/metrics"
	"gascrm-backend/internal/models"
	"gascrm-backend/internal/repositories"
	"gascrm-backend/internal/timeutil"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var clientExportHeaders = []string{
	"Nombre", "Tipo", "Estatus", "Dirección", "Teléfono", "Correo",
	"Vendedor", "Zona", "Crédito (días)", "Descuento", "Última visita", "Alta",
}

type ExportService struct {
	clientService *ClientService
	exportRepo    *repositories.ExportRepository
}

func NewExportService(clientService *ClientService, exportRepo *repositories.ExportRepository) *ExportService {
	return &ExportService{
		clientService: clientService,
		exportRepo:    exportRepo,
	}
}

// Generate builds an xlsx of the clients visible to the caller under the
// requested filters, records the export and returns the file inline as
// base64. The filename carries the local calendar date.
func (s *ExportService) Generate(ctx context.Context, current *models.User, req *models.CreateExportRequest) (*models.ExportResponse, error) {
	clients, err := s.clientService.ListVisible(ctx, current, req.ViewingAs, req.Status, req.Type, req.Area)
	if err != nil {
		return nil, err
	}

	fileName := fmt.Sprintf("clientes_%s.xlsx", timeutil.Now().Format(timeutil.DateLayout))

	data, err := buildClientWorkbook(clients, exportMeta{
		ExportedAt: timeutil.Now(),
		ExportedBy: current.Name,
		Filters:    describeFilters(req),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build workbook: %w", err)
	}

	filters, _ := json.Marshal(req)
	record := &models.Export{
		ID:          uuid.NewString(),
		FileName:    fileName,
		ExportedBy:  current.ID,
		ClientCount: len(clients),
		Filters:     string(filters),
	}
	if err := s.exportRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record export: %w", err)
	}

	metrics.ExportsGenerated.Inc()

	return &models.ExportResponse{
		FileName:    fileName,
		ContentType: xlsxContentType,
		Data:        base64.StdEncoding.EncodeToString(data),
		ClientCount: len(clients),
	}, nil
}

func (s *ExportService) History(ctx context.Context) ([]*models.Export, error) {
	return s.exportRepo.List(ctx)
}

type exportMeta struct {
	ExportedAt time.Time
	ExportedBy string
	Filters    string
}

func describeFilters(req *models.CreateExportRequest) string {
	var parts []string
	if req.Status != "" {
		parts = append(parts, "estatus="+req.Status)
	}
	if req.Type != "" {
		parts = append(parts, "tipo="+req.Type)
	}
	if req.Area != "" {
		parts = append(parts, "zona="+req.Area)
	}
	if req.ViewingAs != "" {
		parts = append(parts, "vendedor="+req.ViewingAs)
	}
	if len(parts) == 0 {
		return "ninguno"
	}
	return strings.Join(parts, ", ")
}

func buildClientWorkbook(clients []*models.Client, meta exportMeta) ([]byte, error) {
	f := excelize.NewFile()
	sheet := "Clientes"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range clientExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, c := range clients {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), c.Name)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), c.Type)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), c.Status)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), c.Address)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), c.Phone)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), c.Email)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), c.AssignedTo)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), c.Area)
		if c.HasCredit && c.CreditDays != nil {
			f.SetCellValue(sheet, fmt.Sprintf("I%d", row), *c.CreditDays)
		}
		if c.HasDiscount && c.DiscountAmount != nil {
			f.SetCellValue(sheet, fmt.Sprintf("J%d", row), *c.DiscountAmount)
		}
		if c.LastVisit != nil {
			f.SetCellValue(sheet, fmt.Sprintf("K%d", row),
				timeutil.ToCST(*c.LastVisit).Format(timeutil.DateLayout))
		}
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row),
			timeutil.ToCST(c.CreatedAt).Format(timeutil.DateLayout))
	}

	colWidths := []float64{24, 12, 12, 32, 14, 24, 18, 14, 12, 10, 12, 12}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	info := "Información"
	if _, err := f.NewSheet(info); err != nil {
		return nil, err
	}
	f.SetCellValue(info, "A1", "Fecha de exportación")
	f.SetCellValue(info, "B1", timeutil.ToCST(meta.ExportedAt).Format("2006-01-02 15:04"))
	f.SetCellValue(info, "A2", "Exportado por")
	f.SetCellValue(info, "B2", meta.ExportedBy)
	f.SetCellValue(info, "A3", "Filtros")
	f.SetCellValue(info, "B3", meta.Filters)
	f.SetCellValue(info, "A4", "Total de clientes")
	f.SetCellValue(info, "B4", len(clients))
	f.SetColWidth(info, "A", "A", 22)
	f.SetColWidth(info, "B", "B", 40)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
