package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gascrm-backend/internal/middleware"
	"gascrm-backend/internal/models"
	"gascrm-backend/internal/services"

	"github.com/gorilla/mux"
)

type ActivityHandler struct {
	Service *services.ActivityService
}

func NewActivityHandler(s *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: s}
}

// AppendActivity logs one interaction against a client. The response
// carries the stored entry plus the derived notification, if any.
func (h *ActivityHandler) AppendActivity(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["id"]

	var req models.AppendActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	createdBy, _ := middleware.GetUserNameFromContext(r.Context())

	activity, notification, err := h.Service.Append(r.Context(), clientID, &req, createdBy)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			http.Error(w, "Client not found", http.StatusNotFound)
		case errors.Is(err, services.ErrInvalidActivityType):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	resp := map[string]interface{}{"activity": activity}
	if notification != nil {
		resp["notification"] = notification
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	clientID := mux.Vars(r)["id"]

	activities, err := h.Service.History(r.Context(), clientID)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			http.Error(w, "Client not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if activities == nil {
		activities = []*models.Activity{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(activities)
}
