package order

import (
	"context"
	"fmt"

	"github.com/keebstore/storefront/internal/models"
	"github.com/keebstore/storefront/internal/repo"
)

const (
	ChannelTable    = "table"
	ChannelDeepLink = "deeplink"
)

// Result is what a channel hands back after a successful dispatch.
// RedirectURL is set when the visitor has to be sent somewhere else to
// finish the order.
type Result struct {
	RedirectURL string `json:"redirect_url,omitempty"`
}

// Channel delivers a submitted order to an external collaborator.
type Channel interface {
	Name() string
	Dispatch(ctx context.Context, o models.Order, p models.Product) (Result, error)
}

// TableChannel inserts orders into the orders table.
type TableChannel struct {
	orders repo.OrderRepository
}

func NewTableChannel(orders repo.OrderRepository) *TableChannel {
	return &TableChannel{orders: orders}
}

func (c *TableChannel) Name() string { return ChannelTable }

func (c *TableChannel) Dispatch(ctx context.Context, o models.Order, _ models.Product) (Result, error) {
	if err := c.orders.Create(ctx, o); err != nil {
		return Result{}, fmt.Errorf("insert order: %w", err)
	}
	return Result{}, nil
}

// Submit runs one submission: open → submitting → closed on success, or back
// to open on failure. checkpoint, when set, runs once the overlay is in the
// submitting phase and before the channel is called; it is where callers
// persist the in-flight state.
func Submit(ctx context.Context, o *Overlay, f Form, ch Channel, checkpoint func() error) (Result, error) {
	ord, err := o.Begin(f)
	if err != nil {
		return Result{}, err
	}
	if checkpoint != nil {
		if err := checkpoint(); err != nil {
			o.Complete(err)
			return Result{}, err
		}
	}
	res, err := ch.Dispatch(ctx, ord, *o.Product)
	o.Complete(err)
	return res, err
}
