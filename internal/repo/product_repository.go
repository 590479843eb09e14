package repo

import (
	"context"

	"github.com/keebstore/storefront/internal/models"
)

// ProductRepository defines the read side of the products table.
type ProductRepository interface {
	// GetAll returns every product, newest first.
	GetAll(ctx context.Context) ([]models.Product, error)
}
