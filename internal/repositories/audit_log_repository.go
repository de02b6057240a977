package repositories

import (
	"context"
	"time"

	"gascrm-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AuditLogRepository struct {
	DB *pgxpool.Pool
}

func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

// CreateLog records one create/update/delete with before/after snapshots
func (r *AuditLogRepository) CreateLog(ctx context.Context, log *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (
			user_id, action, entity_type, entity_id,
			old_value, new_value, ip_address, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err := r.DB.Exec(ctx, query,
		log.UserID, log.Action, log.EntityType, log.EntityID,
		log.OldValue, log.NewValue, log.IPAddress,
	)

	return err
}

// ListAll retrieves all audit logs with actor details
func (r *AuditLogRepository) ListAll(ctx context.Context) ([]map[string]interface{}, error) {
	query := `
		SELECT
			al.id,
			COALESCE(al.user_id, '') as user_id,
			COALESCE(u.name, '') as user_name,
			COALESCE(u.email, '') as user_email,
			COALESCE(u.role, '') as user_role,
			al.action,
			al.entity_type,
			al.entity_id,
			al.old_value,
			al.new_value,
			al.ip_address,
			al.created_at
		FROM audit_logs al
		LEFT JOIN users u ON al.user_id = u.id
		ORDER BY al.created_at DESC
	`

	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []map[string]interface{}
	for rows.Next() {
		var (
			id         int
			userID     string
			userName   string
			userEmail  string
			userRole   string
			action     string
			entityType string
			entityID   string
			oldValue   *string
			newValue   *string
			ipAddress  *string
			createdAt  time.Time
		)

		if err := rows.Scan(
			&id, &userID, &userName, &userEmail, &userRole,
			&action, &entityType, &entityID,
			&oldValue, &newValue, &ipAddress, &createdAt,
		); err != nil {
			return nil, err
		}

		entry := map[string]interface{}{
			"id":          id,
			"user_id":     userID,
			"user_name":   userName,
			"user_email":  userEmail,
			"user_role":   userRole,
			"action":      action,
			"entity_type": entityType,
			"entity_id":   entityID,
			"created_at":  createdAt,
		}

		if oldValue != nil {
			entry["old_value"] = *oldValue
		}
		if newValue != nil {
			entry["new_value"] = *newValue
		}
		if ipAddress != nil {
			entry["ip_address"] = *ipAddress
		}

		logs = append(logs, entry)
	}

	return logs, rows.Err()
}
