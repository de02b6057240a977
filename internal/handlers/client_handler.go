package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"gascrm-backend/internal/models"
	"gascrm-backend/internal/repositories"
	"gascrm-backend/internal/services"

	"github.com/gorilla/mux"
)

type ClientHandler struct {
	Service   *services.ClientService
	UserRepo  *repositories.UserRepository
	AuditRepo *repositories.AuditLogRepository
}

func NewClientHandler(s *services.ClientService, userRepo *repositories.UserRepository, auditRepo *repositories.AuditLogRepository) *ClientHandler {
	return &ClientHandler{
		Service:   s,
		UserRepo:  userRepo,
		AuditRepo: auditRepo,
	}
}

func (h *ClientHandler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req models.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	client, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrAssigneeNotFound) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recordAudit(r, h.AuditRepo, "create", "client", client.ID, nil, client)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(client)
}

func (h *ClientHandler) GetClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	client, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			http.Error(w, "Client not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(client)
}

// ListClients returns the role-scoped client list. Admins may pass
// viewing_as to see the list as one of their sales reps; status, type and
// area narrow the result further.
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r, h.UserRepo)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	clients, err := h.Service.ListVisible(r.Context(), user,
		q.Get("viewing_as"), q.Get("status"), q.Get("type"), q.Get("area"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if clients == nil {
		clients = []*models.Client{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(clients)
}

func (h *ClientHandler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req models.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	before, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			http.Error(w, "Client not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	before.ActivityHistory = nil

	client, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	recordAudit(r, h.AuditRepo, "update", "client", id, before, client)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(client)
}

func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	before, err := h.Service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			http.Error(w, "Client not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	before.ActivityHistory = nil

	if err := h.Service.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	recordAudit(r, h.AuditRepo, "delete", "client", id, before, nil)

	w.WriteHeader(http.StatusNoContent)
}
