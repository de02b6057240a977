package handlers

import (
	"encoding/json"
	"net/http"

	"gascrm-backend/internal/repositories"
)

// LogsHandler serves the admin audit and login trails
type LogsHandler struct {
	AuditRepo    *repositories.AuditLogRepository
	LoginLogRepo *repositories.LoginLogRepository
}

func NewLogsHandler(auditRepo *repositories.AuditLogRepository, loginLogRepo *repositories.LoginLogRepository) *LogsHandler {
	return &LogsHandler{
		AuditRepo:    auditRepo,
		LoginLogRepo: loginLogRepo,
	}
}

func (h *LogsHandler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.AuditRepo.ListAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if logs == nil {
		logs = []map[string]interface{}{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}

func (h *LogsHandler) ListLoginLogs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.LoginLogRepo.ListAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if logs == nil {
		logs = []map[string]interface{}{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(logs)
}
