package repositories

import (
	"context"
	"errors"

	"gascrm-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type NotificationRepository struct {
	DB *pgxpool.Pool
}

func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

// CreateTx inserts a derived notification inside the caller's transaction
func (r *NotificationRepository) CreateTx(ctx context.Context, tx pgx.Tx, n *models.Notification) error {
	return tx.QueryRow(ctx,
		`INSERT INTO notifications(id, client_id, client_name, type, message, scheduled_date, is_read)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING created_at`,
		n.ID, n.ClientID, n.ClientName, n.Type, n.Message, n.ScheduledDate, n.IsRead,
	).Scan(&n.CreatedAt)
}

// List returns all notifications, unread first, then by scheduled date
func (r *NotificationRepository) List(ctx context.Context) ([]*models.Notification, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, client_id, client_name, type, message, scheduled_date, is_read, created_at
         FROM notifications ORDER BY is_read ASC, scheduled_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		err := rows.Scan(&n.ID, &n.ClientID, &n.ClientName, &n.Type, &n.Message,
			&n.ScheduledDate, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// MarkRead sets is_read=true. No other field is ever mutated.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	tag, err := r.DB.Exec(ctx,
		`UPDATE notifications SET is_read=TRUE WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// IsNotFound reports whether err means the notification does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
