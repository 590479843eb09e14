package handlers

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/keebstore/storefront/internal/models"
	"github.com/keebstore/storefront/internal/observability"
	"github.com/keebstore/storefront/internal/order"
	"github.com/keebstore/storefront/internal/session"
)

const (
	MsgOrderPlaced = "Order placed successfully! We will contact you soon."
	MsgOrderFailed = "Failed to place order. Please try again."
)

// OpenOrderHandler opens the order overlay for product_id. Sold out products
// leave the overlay closed.
func OpenOrderHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PostFormValue("product_id")
	p, ok := storeCatalog.Store().Lookup(id)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}

	var inFlight bool
	var returnTo string
	err := withSession(r, func(ctx context.Context, s *session.State) error {
		returnTo = s.ReturnPath()
		switch err := s.Overlay.Open(p); {
		case errors.Is(err, order.ErrSubmissionInFlight):
			inFlight = true
		case errors.Is(err, order.ErrOutOfStock):
			observability.FromContext(ctx).Debug("order overlay not opened: out of stock", zap.String("product_id", p.ID))
		}
		return nil
	})
	if err != nil {
		serverError(w, r, "failed to open order overlay", err)
		return
	}
	if inFlight {
		http.Error(w, "order submission in progress", http.StatusConflict)
		return
	}
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// UpdateQuantityHandler stores the entered form values and recomputes the
// total for the posted quantity.
func UpdateQuantityHandler(w http.ResponseWriter, r *http.Request) {
	f := formFromRequest(r)

	var inFlight bool
	var returnTo string
	err := withSession(r, func(ctx context.Context, s *session.State) error {
		returnTo = s.ReturnPath()
		switch s.Overlay.Phase {
		case order.PhaseSubmitting:
			inFlight = true
		case order.PhaseOpen:
			s.Overlay.Form = f
			s.Overlay.SetQuantity(f.Quantity)
		}
		return nil
	})
	if err != nil {
		serverError(w, r, "failed to update quantity", err)
		return
	}
	if inFlight {
		http.Error(w, "order submission in progress", http.StatusConflict)
		return
	}
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

func CloseOrderHandler(w http.ResponseWriter, r *http.Request) {
	var returnTo string
	err := withSession(r, func(ctx context.Context, s *session.State) error {
		returnTo = s.ReturnPath()
		s.Overlay.Close()
		return nil
	})
	if err != nil {
		serverError(w, r, "failed to close order overlay", err)
		return
	}
	http.Redirect(w, r, returnTo, http.StatusSeeOther)
}

// SubmitOrderHandler submits the order form through the configured channel.
// Success closes the overlay; a deep link channel then redirects the visitor
// to the chat. Failure keeps the overlay open with everything entered.
func SubmitOrderHandler(w http.ResponseWriter, r *http.Request) {
	f := formFromRequest(r)

	var (
		inFlight bool
		invalid  *pageData
		res      order.Result
		returnTo string
	)
	err := withSession(r, func(ctx context.Context, s *session.State) error {
		returnTo = s.ReturnPath()
		if s.Overlay.Phase == order.PhaseSubmitting {
			inFlight = true
			return nil
		}
		if !s.Overlay.IsOpen() {
			return nil
		}

		product := *s.Overlay.Product
		var subErr error
		res, subErr = order.Submit(ctx, &s.Overlay, f, orderChannel, func() error {
			return sessionStore.Save(ctx, s)
		})

		var verrs order.ValidationErrors
		switch {
		case subErr == nil:
			logOrder(ctx, "order submitted", product)
			if res.RedirectURL == "" {
				s.Flash(MsgOrderPlaced, false)
			}
		case errors.As(subErr, &verrs):
			page := buildPage(s, verrs)
			invalid = &page
		case errors.Is(subErr, order.ErrSubmissionInFlight):
			inFlight = true
		default:
			observability.FromContext(ctx).Error("order submission failed",
				zap.String("product_id", product.ID),
				zap.String("channel", orderChannel.Name()),
				zap.Error(subErr),
			)
			s.Flash(MsgOrderFailed, true)
		}
		return nil
	})
	if err != nil {
		serverError(w, r, "failed to submit order", err)
		return
	}

	switch {
	case inFlight:
		http.Error(w, "order submission in progress", http.StatusConflict)
	case invalid != nil:
		renderPage(w, r, http.StatusBadRequest, *invalid)
	case res.RedirectURL != "":
		http.Redirect(w, r, res.RedirectURL, http.StatusSeeOther)
	default:
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
	}
}

func logOrder(ctx context.Context, msg string, p models.Product) {
	observability.FromContext(ctx).Info(msg,
		zap.String("product_id", p.ID),
		zap.String("channel", orderChannel.Name()),
	)
}

// CreateOrderHandler godoc
// @Summary Place an order
// @Description Validates the order, computes the total from the catalog price and dispatches it through the configured channel
// @Tags orders
// @Accept json
// @Produce json
// @Param order body OrderRequest true "Order to place"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} ValidationErrorsResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/orders [post]
func CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid input")
		return
	}

	if errs := validateOrderRequest(req); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, ValidationErrorsResponse{Errors: errs})
		return
	}

	p, ok := storeCatalog.Store().Lookup(req.ProductID)
	if !ok {
		writeError(w, r, http.StatusNotFound, "product not found")
		return
	}

	var o order.Overlay
	if err := o.Open(p); err != nil {
		writeError(w, r, http.StatusConflict, "product is out of stock")
		return
	}

	res, err := order.Submit(r.Context(), &o, req.form(), orderChannel, nil)
	var verrs order.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		writeJSON(w, http.StatusBadRequest, ValidationErrorsResponse{Errors: verrs})
		return
	case err != nil:
		observability.FromContext(r.Context()).Error("order submission failed",
			zap.String("product_id", p.ID),
			zap.String("channel", orderChannel.Name()),
			zap.Error(err),
		)
		writeError(w, r, http.StatusBadGateway, MsgOrderFailed)
		return
	}

	total := p.Price * int64(req.Quantity)
	writeJSON(w, http.StatusCreated, OrderResponse{
		ProductID:   p.ID,
		Quantity:    req.Quantity,
		TotalPrice:  total,
		TotalLabel:  storeCatalog.Formatter().Format(total),
		Status:      models.OrderStatusPending,
		Channel:     orderChannel.Name(),
		RedirectURL: res.RedirectURL,
	})
}
