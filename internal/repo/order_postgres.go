package repo

import (
	"context"
	"database/sql"
	"time"

	models "github.com/keebstore/storefront/internal/models"
)

type PostgresOrderRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresOrderRepository(db *sql.DB, timeout time.Duration) *PostgresOrderRepository {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &PostgresOrderRepository{db: db, timeout: timeout}
}

func (r *PostgresOrderRepository) Create(ctx context.Context, o models.Order) error {
	query := `INSERT INTO orders (customer_name, customer_email, customer_phone, customer_address, product_id, quantity, total_price, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query,
		o.CustomerName, o.CustomerEmail, o.CustomerPhone, o.CustomerAddress,
		o.ProductID, o.Quantity, o.TotalPrice, o.Notes, o.Status, time.Now().UTC())
	return err
}
