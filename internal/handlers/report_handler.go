package handlers

import (
	"fmt"
	"net/http"

	"gascrm-backend/internal/repositories"
	"gascrm-backend/internal/services"
	"gascrm-backend/internal/timeutil"
)

type ReportHandler struct {
	Service  *services.ReportService
	UserRepo *repositories.UserRepository
}

func NewReportHandler(s *services.ReportService, userRepo *repositories.UserRepository) *ReportHandler {
	return &ReportHandler{
		Service:  s,
		UserRepo: userRepo,
	}
}

// ClientsPDF streams the portfolio report as a PDF download
func (h *ReportHandler) ClientsPDF(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.UserRepo)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	data, err := h.Service.GetClientReportData(r.Context(), user,
		q.Get("viewing_as"), q.Get("status"), q.Get("type"), q.Get("area"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pdfData, err := h.Service.GenerateClientsPDF(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("reporte_clientes_%s.pdf", timeutil.Now().Format(timeutil.DateLayout))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Write(pdfData)
}

// ClientsCSV streams the portfolio report as a CSV download
func (h *ReportHandler) ClientsCSV(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.UserRepo)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	data, err := h.Service.GetClientReportData(r.Context(), user,
		q.Get("viewing_as"), q.Get("status"), q.Get("type"), q.Get("area"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	csvData, err := h.Service.GenerateClientsCSV(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("reporte_clientes_%s.csv", timeutil.Now().Format(timeutil.DateLayout))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Write(csvData)
}
