package repositories

import (
	"context"

	"gascrm-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const activityColumns = `id, client_id, type, date, notes, created_by, next_follow_up_date, created_at`

type ActivityRepository struct {
	DB *pgxpool.Pool
}

func NewActivityRepository(db *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func scanActivity(row pgx.Row) (*models.Activity, error) {
	var a models.Activity
	err := row.Scan(&a.ID, &a.ClientID, &a.Type, &a.Date, &a.Notes,
		&a.CreatedBy, &a.NextFollowUpDate, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateTx inserts an activity inside the caller's transaction. Appends are
// always transactional with the client update and notification derivation.
func (r *ActivityRepository) CreateTx(ctx context.Context, tx pgx.Tx, a *models.Activity) error {
	return tx.QueryRow(ctx,
		`INSERT INTO activities(id, client_id, type, date, notes, created_by, next_follow_up_date)
         VALUES($1, $2, $3, $4, $5, $6, $7)
         RETURNING created_at`,
		a.ID, a.ClientID, a.Type, a.Date, a.Notes, a.CreatedBy, a.NextFollowUpDate,
	).Scan(&a.CreatedAt)
}

// ListByClient returns a client's history, newest interaction first
func (r *ActivityRepository) ListByClient(ctx context.Context, clientID string) ([]*models.Activity, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE client_id=$1 ORDER BY date DESC`, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectActivities(rows)
}

// ListAll returns every activity, newest first. The dashboard aggregator
// uses this to rebuild embedded histories in memory.
func (r *ActivityRepository) ListAll(ctx context.Context) ([]*models.Activity, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+activityColumns+` FROM activities ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectActivities(rows)
}

func collectActivities(rows pgx.Rows) ([]*models.Activity, error) {
	var activities []*models.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
