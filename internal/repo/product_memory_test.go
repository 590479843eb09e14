package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keebstore/storefront/internal/models"
)

func TestStaticCatalogLoads(t *testing.T) {
	r, err := NewStaticProductRepository()
	require.NoError(t, err)

	products, err := r.GetAll(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, products)

	ids := map[string]bool{}
	for _, p := range products {
		assert.False(t, ids[p.ID], "duplicate id %s", p.ID)
		ids[p.ID] = true
		assert.GreaterOrEqual(t, p.Price, int64(0))
		assert.Nil(t, p.Stock, "static catalog does not track stock")
	}
}

func TestParseStaticCatalogRejectsDuplicates(t *testing.T) {
	data := []byte(`
products:
  - id: a
    name: A
    price: 1
  - id: a
    name: B
    price: 2
`)
	_, err := ParseStaticCatalog(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestParseStaticCatalogRejectsNegativePrice(t *testing.T) {
	_, err := ParseStaticCatalog([]byte("products:\n  - id: a\n    price: -5\n"))
	require.Error(t, err)
}

func TestInMemoryProductRepository_GetAllReturnsCopy(t *testing.T) {
	r := NewInMemoryProductRepository(models.Product{ID: "a", Name: "A"}, models.Product{ID: "b", Name: "B"})

	first, err := r.GetAll(context.Background())
	require.NoError(t, err)
	first[0].Name = "changed"

	second, err := r.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", second[0].Name)
}
