package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"gascrm-backend/internal/middleware"
	"gascrm-backend/internal/models"
	"gascrm-backend/internal/repositories"
)

// currentUser resolves the authenticated user record from the request
// context. The auth middleware guarantees the id is present and active.
func currentUser(r *http.Request, userRepo *repositories.UserRepository) (*models.User, error) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return nil, http.ErrNoCookie
	}
	return userRepo.Get(r.Context(), userID)
}

// recordAudit writes one audit trail row. Audit failures are logged, never
// surfaced to the caller.
func recordAudit(r *http.Request, auditRepo *repositories.AuditLogRepository, action, entityType, entityID string, oldValue, newValue interface{}) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	ip := getIPAddress(r)

	entry := &models.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		IPAddress:  &ip,
	}
	if oldValue != nil {
		if data, err := json.Marshal(oldValue); err == nil {
			s := string(data)
			entry.OldValue = &s
		}
	}
	if newValue != nil {
		if data, err := json.Marshal(newValue); err == nil {
			s := string(data)
			entry.NewValue = &s
		}
	}

	if err := auditRepo.CreateLog(r.Context(), entry); err != nil {
		log.Printf("[Audit] Failed to record %s %s/%s: %v", action, entityType, entityID, err)
	}
}
