package order

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/keebstore/storefront/internal/models"
)

// Phase is the state of the order overlay.
type Phase string

const (
	PhaseClosed     Phase = "closed"
	PhaseOpen       Phase = "open"
	PhaseSubmitting Phase = "submitting"
)

// MaxQuantity is the largest quantity a single order may carry.
const MaxQuantity = 999

const (
	LabelPlaceOrder = "Place Order"
	LabelProcessing = "Processing..."
)

var (
	ErrOutOfStock         = errors.New("order: product is out of stock")
	ErrNoSelection        = errors.New("order: no product selected")
	ErrSubmissionInFlight = errors.New("order: submission already in progress")
)

// Form holds the customer-entered fields of the order form.
type Form struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Notes    string `json:"notes"`
	Quantity string `json:"quantity"`
}

// Overlay is the order entry surface bound to at most one product. The zero
// value is closed.
type Overlay struct {
	Phase    Phase           `json:"phase"`
	Product  *models.Product `json:"product,omitempty"`
	Quantity int             `json:"quantity"`
	Form     Form            `json:"form"`
}

// IsOpen is true while a product is selected, including during submission.
func (o *Overlay) IsOpen() bool {
	return o.Phase == PhaseOpen || o.Phase == PhaseSubmitting
}

// Open selects p with quantity 1. Sold out products leave the overlay as it was.
func (o *Overlay) Open(p models.Product) error {
	if o.Phase == PhaseSubmitting {
		return ErrSubmissionInFlight
	}
	if p.SoldOut() {
		return ErrOutOfStock
	}
	o.Phase = PhaseOpen
	o.Product = &p
	o.Quantity = 1
	o.Form = Form{Quantity: "1"}
	return nil
}

// Close clears the selection and the form.
func (o *Overlay) Close() {
	*o = Overlay{Phase: PhaseClosed}
}

// ParseQuantity coerces raw input to an integer in [1, MaxQuantity],
// defaulting to 1.
func ParseQuantity(raw string) int {
	if quantityTooLarge(raw) {
		return MaxQuantity
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// SetQuantity updates the quantity and returns the recomputed total.
func (o *Overlay) SetQuantity(raw string) int64 {
	if !o.IsOpen() {
		return 0
	}
	o.Quantity = ParseQuantity(raw)
	o.Form.Quantity = strconv.Itoa(o.Quantity)
	return o.Total()
}

// Total is price × quantity of the selected product.
func (o *Overlay) Total() int64 {
	if o.Product == nil {
		return 0
	}
	q := min(max(o.Quantity, 1), MaxQuantity)
	return o.Product.Price * int64(q)
}

// SubmitDisabled is true while a submission is in flight.
func (o *Overlay) SubmitDisabled() bool {
	return o.Phase == PhaseSubmitting
}

// SubmitLabel is the caption of the submit control.
func (o *Overlay) SubmitLabel() string {
	if o.Phase == PhaseSubmitting {
		return LabelProcessing
	}
	return LabelPlaceOrder
}

// Begin moves an open overlay to submitting and builds the order from the
// form. The entered values are kept on the overlay so a failed submission
// can return to them.
func (o *Overlay) Begin(f Form) (models.Order, error) {
	switch o.Phase {
	case PhaseSubmitting:
		return models.Order{}, ErrSubmissionInFlight
	case PhaseOpen:
	default:
		return models.Order{}, ErrNoSelection
	}
	if o.Product == nil {
		return models.Order{}, ErrNoSelection
	}

	f = f.trimmed()
	errs := ValidateForm(f)
	o.Quantity = ParseQuantity(f.Quantity)
	f.Quantity = strconv.Itoa(o.Quantity)
	o.Form = f

	if o.Product.Price > math.MaxInt64/int64(o.Quantity) {
		errs = append(errs, ValidationError{Field: "quantity", Description: "Order total is too large"})
	}
	if len(errs) > 0 {
		return models.Order{}, errs
	}

	o.Phase = PhaseSubmitting
	return models.Order{
		CustomerName:    f.Name,
		CustomerEmail:   f.Email,
		CustomerPhone:   f.Phone,
		CustomerAddress: f.Address,
		ProductID:       o.Product.ID,
		Quantity:        o.Quantity,
		TotalPrice:      o.Total(),
		Notes:           f.Notes,
		Status:          models.OrderStatusPending,
	}, nil
}

// Complete ends a submission. Success closes the overlay; failure returns it
// to open with product, quantity and form untouched.
func (o *Overlay) Complete(err error) {
	if o.Phase != PhaseSubmitting {
		return
	}
	if err != nil {
		o.Phase = PhaseOpen
		return
	}
	o.Close()
}

func (f Form) trimmed() Form {
	return Form{
		Name:     strings.TrimSpace(f.Name),
		Email:    strings.TrimSpace(f.Email),
		Phone:    strings.TrimSpace(f.Phone),
		Address:  strings.TrimSpace(f.Address),
		Notes:    strings.TrimSpace(f.Notes),
		Quantity: strings.TrimSpace(f.Quantity),
	}
}
