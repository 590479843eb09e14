package catalog

import (
	"fmt"
	"html/template"
	"unicode"
	"unicode/utf8"

	"github.com/keebstore/storefront/internal/models"
)

const (
	MsgLoadFailed  = "Failed to load products. Please try again later."
	MsgNoProducts  = "No products found in this category."
	MsgNoFeatured  = "No featured products at the moment."
	LabelOrderNow  = "Order Now"
	LabelSoldOut   = "Out of Stock"
	LabelAllFilter = "All"
)

// Card is the view model of one product card.
type Card struct {
	ID              string
	Name            string
	Category        string
	DescriptionHTML template.HTML
	ImageURL        string
	Price           int64
	PriceLabel      string
	StockTracked    bool
	StockLabel      string
	Orderable       bool
	ButtonLabel     string
}

// FilterControl is one category button.
type FilterControl struct {
	Value  string
	Label  string
	Active bool
}

// SortOption is one entry of the sort selector.
type SortOption struct {
	Value    string
	Label    string
	Selected bool
}

// View is everything a template needs to draw the product grid. When
// Placeholder is set, Cards is empty and the grid shows only the placeholder.
type View struct {
	Cards       []Card
	Count       int
	CountLabel  string
	Placeholder string
	Failed      bool
	Filter      string
	Sort        SortKey
	Filters     []FilterControl
	SortOptions []SortOption
}

// CountLabel returns "1 product" or "N products".
func CountLabel(n int) string {
	if n == 1 {
		return "1 product"
	}
	return fmt.Sprintf("%d products", n)
}

// NewCard builds the card for p. The price label and Price come from the
// same integer.
func NewCard(p models.Product, f Formatter) Card {
	c := Card{
		ID:              p.ID,
		Name:            p.Name,
		Category:        p.Category,
		DescriptionHTML: RenderDescription(p.Description),
		ImageURL:        p.ImageURL,
		Price:           p.Price,
		PriceLabel:      f.Format(p.Price),
		StockTracked:    p.StockTracked(),
		Orderable:       !p.SoldOut(),
		ButtonLabel:     LabelOrderNow,
	}
	if c.StockTracked {
		c.StockLabel = fmt.Sprintf("Stock: %d", *p.Stock)
	}
	if !c.Orderable {
		c.ButtonLabel = LabelSoldOut
	}
	return c
}

// Render maps an ordered product sequence to cards and a count label.
func Render(items []models.Product, f Formatter) View {
	if len(items) == 0 {
		return View{
			Count:       0,
			CountLabel:  CountLabel(0),
			Placeholder: MsgNoProducts,
		}
	}
	cards := make([]Card, len(items))
	for i, p := range items {
		cards[i] = NewCard(p, f)
	}
	return View{
		Cards:      cards,
		Count:      len(cards),
		CountLabel: CountLabel(len(cards)),
	}
}

// RenderFailed is the view shown when the collection could not be loaded.
// It has no count label at all.
func RenderFailed() View {
	return View{
		Placeholder: MsgLoadFailed,
		Failed:      true,
	}
}

// FilterControls marks the control matching current as active.
func FilterControls(categories []string, current string) []FilterControl {
	if current == "" {
		current = FilterAll
	}
	controls := make([]FilterControl, 0, len(categories)+1)
	controls = append(controls, FilterControl{Value: FilterAll, Label: LabelAllFilter, Active: current == FilterAll})
	for _, c := range categories {
		if c == FilterAll {
			continue
		}
		controls = append(controls, FilterControl{Value: c, Label: categoryLabel(c), Active: current == c})
	}
	return controls
}

// SortOptions marks the option matching current as selected.
func SortOptions(current SortKey) []SortOption {
	current = ParseSortKey(string(current))
	opts := make([]SortOption, len(SortKeys))
	for i, k := range SortKeys {
		opts[i] = SortOption{Value: string(k), Label: k.Label(), Selected: k == current}
	}
	return opts
}

func categoryLabel(c string) string {
	if c == "" {
		return c
	}
	r, size := utf8.DecodeRuneInString(c)
	return string(unicode.ToUpper(r)) + c[size:]
}
