package repositories

import (
	"context"
	"time"

	"gascrm-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const clientColumns = `id, name, type, status, address, phone, COALESCE(email, '') as email,
         COALESCE(assigned_to_id, '') as assigned_to_id, assigned_to, area,
         has_credit, credit_days, has_discount, discount_amount,
         last_visit, created_at, updated_at`

type ClientRepository struct {
	DB *pgxpool.Pool
}

func NewClientRepository(db *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{DB: db}
}

func scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.Type, &c.Status, &c.Address, &c.Phone, &c.Email,
		&c.AssignedToID, &c.AssignedTo, &c.Area,
		&c.HasCredit, &c.CreditDays, &c.HasDiscount, &c.DiscountAmount,
		&c.LastVisit, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *models.Client) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO clients(id, name, type, status, address, phone, email,
             assigned_to_id, assigned_to, area,
             has_credit, credit_days, has_discount, discount_amount)
         VALUES($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9, $10, $11, $12, $13, $14)
         RETURNING created_at, updated_at`,
		c.ID, c.Name, c.Type, c.Status, c.Address, c.Phone, c.Email,
		c.AssignedToID, c.AssignedTo, c.Area,
		c.HasCredit, c.CreditDays, c.HasDiscount, c.DiscountAmount,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *ClientRepository) Get(ctx context.Context, id string) (*models.Client, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id=$1`, id)
	return scanClient(row)
}

func (r *ClientRepository) List(ctx context.Context) ([]*models.Client, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *ClientRepository) Update(ctx context.Context, c *models.Client) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE clients SET name=$1, type=$2, status=$3, address=$4, phone=$5, email=$6,
             assigned_to_id=NULLIF($7, ''), assigned_to=$8, area=$9,
             has_credit=$10, credit_days=$11, has_discount=$12, discount_amount=$13,
             updated_at=CURRENT_TIMESTAMP
         WHERE id=$14`,
		c.Name, c.Type, c.Status, c.Address, c.Phone, c.Email,
		c.AssignedToID, c.AssignedTo, c.Area,
		c.HasCredit, c.CreditDays, c.HasDiscount, c.DiscountAmount, c.ID)
	return err
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	return err
}

// TouchLastVisitTx advances a client's last_visit inside the activity
// append transaction. All activity types count as contact.
func (r *ClientRepository) TouchLastVisitTx(ctx context.Context, tx pgx.Tx, clientID string, visitedAt time.Time) error {
	_, err := tx.Exec(ctx,
		`UPDATE clients SET last_visit=$1, updated_at=CURRENT_TIMESTAMP WHERE id=$2`,
		visitedAt, clientID)
	return err
}

// RenameAssignee refreshes the denormalized assigned_to display cache after
// a user rename. The assigned_to_id join stays stable either way.
func (r *ClientRepository) RenameAssignee(ctx context.Context, userID, name string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE clients SET assigned_to=$1 WHERE assigned_to_id=$2`, name, userID)
	return err
}

// UnassignClients detaches every client held by the user, clearing both the
// id and the display-name cache. Used before a user is deleted.
func (r *ClientRepository) UnassignClients(ctx context.Context, userID string) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE clients SET assigned_to_id=NULL, assigned_to='', updated_at=CURRENT_TIMESTAMP
         WHERE assigned_to_id=$1`, userID)
	return err
}
