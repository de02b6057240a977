package repositories

import (
	"context"

	"gascrm-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ExportRepository struct {
	DB *pgxpool.Pool
}

func NewExportRepository(db *pgxpool.Pool) *ExportRepository {
	return &ExportRepository{DB: db}
}

func (r *ExportRepository) Create(ctx context.Context, e *models.Export) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO exports(id, file_name, exported_by, client_count, filters)
         VALUES($1, $2, $3, $4, $5)
         RETURNING created_at`,
		e.ID, e.FileName, e.ExportedBy, e.ClientCount, e.Filters,
	).Scan(&e.CreatedAt)
}

func (r *ExportRepository) List(ctx context.Context) ([]*models.Export, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, file_name, COALESCE(exported_by, '') as exported_by, client_count, filters, created_at
         FROM exports ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []*models.Export
	for rows.Next() {
		var e models.Export
		err := rows.Scan(&e.ID, &e.FileName, &e.ExportedBy, &e.ClientCount, &e.Filters, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		exports = append(exports, &e)
	}
	return exports, rows.Err()
}
