package handlers

import (
	"encoding/json"
	"net/http"

	"gascrm-backend/internal/models"
	"gascrm-backend/internal/repositories"
	"gascrm-backend/internal/services"
)

type ExportHandler struct {
	Service  *services.ExportService
	UserRepo *repositories.UserRepository
}

func NewExportHandler(s *services.ExportService, userRepo *repositories.UserRepository) *ExportHandler {
	return &ExportHandler{
		Service:  s,
		UserRepo: userRepo,
	}
}

// CreateExport generates a client spreadsheet scoped to the caller's
// visibility and returns it inline as base64
func (h *ExportHandler) CreateExport(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.UserRepo)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreateExportRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	resp, err := h.Service.Generate(r.Context(), user, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *ExportHandler) ListExports(w http.ResponseWriter, r *http.Request) {
	exports, err := h.Service.History(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if exports == nil {
		exports = []*models.Export{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(exports)
}
