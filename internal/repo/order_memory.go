package repo

import (
	"context"
	"slices"
	"sync"

	"github.com/keebstore/storefront/internal/models"
)

// InMemoryOrderRepository keeps inserted orders in memory. FailWith makes every
// following insert fail, which lets tests drive the submission failure path.
type InMemoryOrderRepository struct {
	mu     sync.Mutex
	orders []models.Order
	err    error
}

func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{}
}

func (r *InMemoryOrderRepository) Create(ctx context.Context, o models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	r.orders = append(r.orders, o)
	return nil
}

// FailWith sets the error returned by Create. A nil error restores normal inserts.
func (r *InMemoryOrderRepository) FailWith(err error) {
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
}

// Orders returns a copy of everything inserted so far.
func (r *InMemoryOrderRepository) Orders() []models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.orders)
}
