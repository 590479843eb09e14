package catalog

import (
	"cmp"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/keebstore/storefront/internal/models"
)

// SortKey selects one of the fixed product orderings.
type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortName      SortKey = "name"
)

// SortKeys lists the keys in the order the sort selector shows them.
var SortKeys = []SortKey{SortNewest, SortPriceLow, SortPriceHigh, SortName}

var sortLabels = map[SortKey]string{
	SortNewest:    "Newest",
	SortPriceLow:  "Price: Low to High",
	SortPriceHigh: "Price: High to Low",
	SortName:      "Name: A to Z",
}

// ParseSortKey maps unknown or empty values to SortNewest.
func ParseSortKey(s string) SortKey {
	k := SortKey(s)
	if _, ok := sortLabels[k]; ok {
		return k
	}
	return SortNewest
}

// Label is the human readable name of the key.
func (k SortKey) Label() string {
	return sortLabels[ParseSortKey(string(k))]
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseCreatedAt returns the zero time for values it cannot parse, so such
// products sort as the oldest.
func parseCreatedAt(s string) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Sorter orders products. Name ordering follows the collation rules of Lang.
type Sorter struct {
	Lang language.Tag
}

// Sort returns a new, stably sorted slice. Products with equal keys keep
// their relative order, so sorting twice by the same key changes nothing.
func (s Sorter) Sort(key SortKey, items []models.Product) []models.Product {
	out := slices.Clone(items)

	switch ParseSortKey(string(key)) {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b models.Product) int {
			return cmp.Compare(a.Price, b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b models.Product) int {
			return cmp.Compare(b.Price, a.Price)
		})
	case SortName:
		// Collators keep internal buffers and are not safe for concurrent use.
		c := collate.New(s.Lang)
		slices.SortStableFunc(out, func(a, b models.Product) int {
			return c.CompareString(a.Name, b.Name)
		})
	default:
		created := make(map[string]time.Time, len(out))
		for _, p := range out {
			created[p.CreatedAt] = parseCreatedAt(p.CreatedAt)
		}
		slices.SortStableFunc(out, func(a, b models.Product) int {
			return created[b.CreatedAt].Compare(created[a.CreatedAt])
		})
	}
	return out
}
