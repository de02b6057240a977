package handlers

import (
	"encoding/json"
	"net/http"

	"gascrm-backend/internal/repositories"
	"gascrm-backend/internal/services"
)

type DashboardHandler struct {
	Service  *services.DashboardService
	UserRepo *repositories.UserRepository
}

func NewDashboardHandler(s *services.DashboardService, userRepo *repositories.UserRepository) *DashboardHandler {
	return &DashboardHandler{
		Service:  s,
		UserRepo: userRepo,
	}
}

// GetStats returns the KPI aggregates for the caller's visible clients
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.UserRepo)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	kpis, err := h.Service.GetKPIs(r.Context(), user, r.URL.Query().Get("viewing_as"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(kpis)
}
