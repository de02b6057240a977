package handlers

import (
	"encoding/json"
	"net/http"

	"gascrm-backend/internal/backup"
)

type BackupHandler struct {
	Service *backup.SnapshotService
}

func NewBackupHandler(s *backup.SnapshotService) *BackupHandler {
	return &BackupHandler{Service: s}
}

// CreateSnapshot takes a full snapshot of every collection to local disk
// and, when configured, uploads the combined archive to R2
func (h *BackupHandler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Run(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(result)
}

// GetStatus reports whether R2 upload is configured and the last snapshot
// taken since this process started
func (h *BackupHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Service.Status())
}
