package repo

import (
	"context"

	"github.com/keebstore/storefront/internal/models"
)

// OrderRepository inserts orders into the orders table. Inserted rows are
// never read back by the storefront.
type OrderRepository interface {
	Create(ctx context.Context, order models.Order) error
}
