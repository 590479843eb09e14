package models

// Product represents a catalog entry as stored in the products table.
type Product struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
	Price       int64  `json:"price" yaml:"price"`
	ImageURL    string `json:"image_url" yaml:"image_url"`
	Stock       *int   `json:"stock,omitempty" yaml:"stock,omitempty"`
	CreatedAt   string `json:"created_at" yaml:"created_at"`
	Featured    bool   `json:"featured,omitempty" yaml:"featured,omitempty"`
}

// StockTracked reports whether the product carries a stock count.
// Products without one are treated as unlimited.
func (p Product) StockTracked() bool {
	return p.Stock != nil
}

// SoldOut is true only when stock is tracked and has reached zero.
func (p Product) SoldOut() bool {
	return p.Stock != nil && *p.Stock <= 0
}
