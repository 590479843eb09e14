package catalog

import (
	"github.com/keebstore/storefront/internal/models"
)

// DefaultFeaturedLimit is the size of the featured section.
const DefaultFeaturedLimit = 3

// Catalog derives filtered and sorted views from a Store.
type Catalog struct {
	store         *Store
	sorter        Sorter
	formatter     Formatter
	featuredLimit int
}

// New builds a Catalog. Name sorting uses the formatter's locale.
func New(store *Store, formatter Formatter, featuredLimit int) *Catalog {
	if featuredLimit <= 0 {
		featuredLimit = DefaultFeaturedLimit
	}
	return &Catalog{
		store:         store,
		sorter:        Sorter{Lang: formatter.Lang},
		formatter:     formatter,
		featuredLimit: featuredLimit,
	}
}

func (c *Catalog) Store() *Store { return c.store }

func (c *Catalog) Formatter() Formatter { return c.formatter }

// Query filters then sorts, always starting from the full collection.
func (c *Catalog) Query(category string, key SortKey) []models.Product {
	return c.sorter.Sort(key, Filter(c.store.Products(), category))
}

// View renders the grid for the given filter and sort. A failed load always
// wins over filtering.
func (c *Catalog) View(category string, key SortKey) View {
	if category == "" {
		category = FilterAll
	}
	key = ParseSortKey(string(key))

	var v View
	if c.store.Err() != nil {
		v = RenderFailed()
	} else {
		v = Render(c.Query(category, key), c.formatter)
	}
	v.Filter = category
	v.Sort = key
	v.Filters = FilterControls(c.store.Categories(), category)
	v.SortOptions = SortOptions(key)
	return v
}

// FeaturedView renders the featured section.
func (c *Catalog) FeaturedView() View {
	if c.store.Err() != nil {
		return RenderFailed()
	}
	featured := c.store.Featured(c.featuredLimit)
	if len(featured) == 0 {
		return View{Placeholder: MsgNoFeatured}
	}
	return Render(featured, c.formatter)
}

// CategorySummary is the number of products in one category.
type CategorySummary struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Summary describes the loaded collection.
type Summary struct {
	TotalProducts int               `json:"total_products"`
	FeaturedCount int               `json:"featured_count"`
	SoldOutCount  int               `json:"sold_out_count"`
	Categories    []CategorySummary `json:"categories"`
	LoadFailed    bool              `json:"load_failed"`
}

// Summary counts products per category, in filter-control order.
func (c *Catalog) Summary() Summary {
	products := c.store.Products()
	counts := c.store.CategoryCounts()

	s := Summary{
		TotalProducts: len(products),
		LoadFailed:    c.store.Err() != nil,
	}
	for _, p := range products {
		if p.Featured {
			s.FeaturedCount++
		}
		if p.SoldOut() {
			s.SoldOutCount++
		}
	}
	for _, cat := range c.store.Categories() {
		s.Categories = append(s.Categories, CategorySummary{Category: cat, Count: counts[cat]})
	}
	return s
}
