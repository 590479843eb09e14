package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/keebstore/storefront/internal/order"
)

// validateOrderRequest checks what the order form does not cover for API
// callers: a product reference and a positive quantity.
func validateOrderRequest(req OrderRequest) []order.ValidationError {
	errs := []order.ValidationError{}
	if strings.TrimSpace(req.ProductID) == "" {
		errs = append(errs, order.ValidationError{Field: "product_id", Description: "Product is required"})
	}
	switch {
	case req.Quantity < 1:
		errs = append(errs, order.ValidationError{Field: "quantity", Description: "Quantity must be at least 1"})
	case req.Quantity > order.MaxQuantity:
		errs = append(errs, order.ValidationError{Field: "quantity", Description: fmt.Sprintf("Quantity must be at most %d", order.MaxQuantity)})
	}
	return errs
}

func (req OrderRequest) form() order.Form {
	return order.Form{
		Name:     req.CustomerName,
		Email:    req.CustomerEmail,
		Phone:    req.CustomerPhone,
		Address:  req.CustomerAddress,
		Notes:    req.Notes,
		Quantity: strconv.Itoa(req.Quantity),
	}
}

// formFromRequest reads the order form fields of a posted HTML form.
func formFromRequest(r *http.Request) order.Form {
	return order.Form{
		Name:     r.PostFormValue("customer_name"),
		Email:    r.PostFormValue("customer_email"),
		Phone:    r.PostFormValue("customer_phone"),
		Address:  r.PostFormValue("customer_address"),
		Notes:    r.PostFormValue("notes"),
		Quantity: r.PostFormValue("quantity"),
	}
}
