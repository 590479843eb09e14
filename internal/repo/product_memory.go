package repo

import (
	"context"
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/keebstore/storefront/internal/models"
)

//go:embed static_catalog.yaml
var staticCatalog []byte

type staticCatalogFile struct {
	Products []models.Product `yaml:"products"`
}

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
// It backs the static catalog and the tests.
type InMemoryProductRepository struct {
	products []models.Product
}

// NewInMemoryProductRepository creates a repository holding the given products
// in the given order.
func NewInMemoryProductRepository(products ...models.Product) *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: slices.Clone(products),
	}
}

// NewStaticProductRepository loads the catalog embedded in the binary.
func NewStaticProductRepository() (*InMemoryProductRepository, error) {
	products, err := ParseStaticCatalog(staticCatalog)
	if err != nil {
		return nil, err
	}
	return NewInMemoryProductRepository(products...), nil
}

// ParseStaticCatalog decodes a YAML product list and rejects duplicate ids.
func ParseStaticCatalog(data []byte) ([]models.Product, error) {
	var file staticCatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to decode static catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Products))
	for _, p := range file.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("static catalog: product %q has no id", p.Name)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("static catalog: duplicate product id %q", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("static catalog: product %q has a negative price", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return file.Products, nil
}

// GetAll retrieves all products from the repository.
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	return slices.Clone(r.products), nil
}
