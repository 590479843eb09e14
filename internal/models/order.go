package models

// OrderStatusPending is the status every new order is created with.
const OrderStatusPending = "pending"

// Order is the record handed to an order channel at submission time.
// TotalPrice is always derived from the product price and quantity.
type Order struct {
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
	ProductID       string `json:"product_id"`
	Quantity        int    `json:"quantity"`
	TotalPrice      int64  `json:"total_price"`
	Notes           string `json:"notes"`
	Status          string `json:"status"`
}
