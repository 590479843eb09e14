package handlers

import (
	"github.com/keebstore/storefront/internal/catalog"
	"github.com/keebstore/storefront/internal/models"
	"github.com/keebstore/storefront/internal/nav"
	"github.com/keebstore/storefront/internal/order"
)

type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	PriceLabel  string `json:"price_label"`
	ImageURL    string `json:"image_url"`
	Stock       *int   `json:"stock,omitempty"`
	SoldOut     bool   `json:"sold_out"`
	Featured    bool   `json:"featured"`
	CreatedAt   string `json:"created_at"`
}

type Meta struct {
	TotalCount int    `json:"total_count"`
	Category   string `json:"category"`
	Sort       string `json:"sort"`
}

type ProductsSearchResult struct {
	Data []ProductResponse `json:"data"`
	Meta Meta              `json:"meta"`
}

type OrderRequest struct {
	ProductID       string `json:"product_id"`
	Quantity        int    `json:"quantity"`
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
	Notes           string `json:"notes"`
}

type OrderResponse struct {
	ProductID   string `json:"product_id"`
	Quantity    int    `json:"quantity"`
	TotalPrice  int64  `json:"total_price"`
	TotalLabel  string `json:"total_label"`
	Status      string `json:"status"`
	Channel     string `json:"channel"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorsResponse struct {
	Errors []order.ValidationError `json:"errors"`
}

func toProductResponse(p models.Product, f catalog.Formatter) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		PriceLabel:  f.Format(p.Price),
		ImageURL:    p.ImageURL,
		Stock:       p.Stock,
		SoldOut:     p.SoldOut(),
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
	}
}

// pageData feeds the "base" template.
type pageData struct {
	Title       string
	Path        string
	Nav         []nav.RenderedItem
	Notice      string
	NoticeError bool
	Featured    *catalog.View
	Catalog     catalog.View
	ShowSort    bool
	Modal       *modalData
}

type modalData struct {
	ProductID      string
	ProductName    string
	PriceLabel     string
	Quantity       int
	MaxQuantity    int
	Total          int64
	TotalLabel     string
	Form           order.Form
	Errors         []order.ValidationError
	SubmitLabel    string
	SubmitDisabled bool
}

func newModalData(o *order.Overlay, f catalog.Formatter, errs []order.ValidationError) *modalData {
	if !o.IsOpen() || o.Product == nil {
		return nil
	}
	total := o.Total()
	return &modalData{
		ProductID:      o.Product.ID,
		ProductName:    o.Product.Name,
		PriceLabel:     f.Format(o.Product.Price),
		Quantity:       o.Quantity,
		MaxQuantity:    order.MaxQuantity,
		Total:          total,
		TotalLabel:     f.Format(total),
		Form:           o.Form,
		Errors:         errs,
		SubmitLabel:    o.SubmitLabel(),
		SubmitDisabled: o.SubmitDisabled(),
	}
}
