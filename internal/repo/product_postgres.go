package repo

import (
	"context"
	"database/sql"
	"time"

	models "github.com/keebstore/storefront/internal/models"
)

const productColumns = `id, name, category, COALESCE(description, ''), price, COALESCE(image_url, ''), stock, created_at, COALESCE(featured, false)`

type PostgresProductRepository struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresProductRepository(db *sql.DB, timeout time.Duration) *PostgresProductRepository {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &PostgresProductRepository{db: db, timeout: timeout}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p         models.Product
		stock     sql.NullInt64
		createdAt time.Time
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &p.ImageURL, &stock, &createdAt, &p.Featured); err != nil {
		return models.Product{}, err
	}
	if stock.Valid {
		s := int(stock.Int64)
		p.Stock = &s
	}
	p.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return p, nil
}

func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
