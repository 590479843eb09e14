package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/keebstore/storefront/internal/models"
	"github.com/keebstore/storefront/internal/repo"
)

// Store holds the product collection for the lifetime of the process. It is
// written by Load and only read afterwards.
type Store struct {
	source     repo.ProductRepository
	categories []string
	logger     *zap.Logger

	mu       sync.RWMutex
	products []models.Product
	loadErr  error
}

// NewStore creates an empty store. categories seeds the filter controls.
func NewStore(source repo.ProductRepository, categories []string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		source:     source,
		categories: slices.Clone(categories),
		logger:     logger,
	}
}

// Load fetches the whole collection. On failure the collection is left empty
// and the error is remembered so the grid can show the failure placeholder;
// the error is also returned for the caller to log, but is never fatal.
func (s *Store) Load(ctx context.Context) error {
	products, err := s.source.GetAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.products = nil
		s.loadErr = fmt.Errorf("load products: %w", err)
		s.logger.Error("error loading products", zap.Error(err))
		return s.loadErr
	}

	s.products = products
	s.loadErr = nil
	s.logger.Info("products loaded", zap.Int("count", len(products)))
	return nil
}

// Err reports the last load failure, if any.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Products returns a copy of the collection.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.products)
}

// Lookup finds a product by id with a linear scan.
func (s *Store) Lookup(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// Featured returns up to n featured products in collection order.
func (s *Store) Featured(n int) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Product
	for _, p := range s.products {
		if len(out) >= n {
			break
		}
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the configured categories followed by any other
// category present in the collection, in first-seen order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.categories)
	for _, p := range s.products {
		if p.Category != "" && !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}

// CategoryCounts returns the number of products per category.
func (s *Store) CategoryCounts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, p := range s.products {
		counts[p.Category]++
	}
	return counts
}
