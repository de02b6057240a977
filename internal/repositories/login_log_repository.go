package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type LoginLogRepository struct {
	DB *pgxpool.Pool
}

func NewLoginLogRepository(db *pgxpool.Pool) *LoginLogRepository {
	return &LoginLogRepository{DB: db}
}

// CreateLoginLog records a new login event
func (r *LoginLogRepository) CreateLoginLog(ctx context.Context, userID, ipAddress, userAgent string) (int, error) {
	query := `
		INSERT INTO login_logs (user_id, login_time, ip_address, user_agent)
		VALUES ($1, NOW(), $2, $3)
		RETURNING id
	`

	var logID int
	err := r.DB.QueryRow(ctx, query, userID, ipAddress, userAgent).Scan(&logID)
	if err != nil {
		return 0, err
	}

	return logID, nil
}

// UpdateLogoutTimeByUser records logout for the most recent open login of a user
func (r *LoginLogRepository) UpdateLogoutTimeByUser(ctx context.Context, userID string) error {
	query := `
		UPDATE login_logs
		SET logout_time = NOW()
		WHERE id = (
			SELECT id FROM login_logs
			WHERE user_id = $1 AND logout_time IS NULL
			ORDER BY login_time DESC
			LIMIT 1
		)
	`

	_, err := r.DB.Exec(ctx, query, userID)
	return err
}

// ListAll retrieves all login/logout logs with user details
func (r *LoginLogRepository) ListAll(ctx context.Context) ([]map[string]interface{}, error) {
	query := `
		SELECT
			ll.id,
			COALESCE(ll.user_id, '') as user_id,
			COALESCE(u.name, '') as user_name,
			COALESCE(u.email, '') as email,
			COALESCE(u.role, '') as role,
			ll.login_time,
			ll.logout_time,
			ll.ip_address,
			ll.user_agent
		FROM login_logs ll
		LEFT JOIN users u ON ll.user_id = u.id
		ORDER BY ll.login_time DESC
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
			email      string
			role       string
			loginTime  time.Time
			logoutTime *time.Time
			ipAddress  *string
			userAgent  *string
		)

		if err := rows.Scan(&id, &userID, &userName, &email, &role, &loginTime, &logoutTime, &ipAddress, &userAgent); err != nil {
			return nil, err
		}

		entry := map[string]interface{}{
			"id":         id,
			"user_id":    userID,
			"user_name":  userName,
			"email":      email,
			"role":       role,
			"login_time": loginTime,
		}

		if logoutTime != nil {
			entry["logout_time"] = *logoutTime
		}
		if ipAddress != nil {
			entry["ip_address"] = *ipAddress
		}
		if userAgent != nil {
			entry["user_agent"] = *userAgent
		}

		logs = append(logs, entry)
	}

	return logs, rows.Err()
}
