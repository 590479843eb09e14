package catalog

import "github.com/keebstore/storefront/internal/models"

// FilterAll is the sentinel category that disables filtering.
const FilterAll = "all"

// Filter returns the products in category, or all of them for FilterAll.
// The result is always a fresh slice; the input is never modified.
func Filter(products []models.Product, category string) []models.Product {
	if category == "" || category == FilterAll {
		out := make([]models.Product, len(products))
		copy(out, products)
		return out
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
