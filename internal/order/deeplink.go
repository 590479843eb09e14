package order

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/keebstore/storefront/internal/catalog"
	"github.com/keebstore/storefront/internal/models"
)

// DefaultMaxURLLength keeps generated links under the limit most messaging
// targets and browsers accept.
const DefaultMaxURLLength = 2000

const ellipsis = "…"

// ErrMessageTooLong is returned when the link exceeds the limit even with
// the notes dropped.
var ErrMessageTooLong = errors.New("order: message too long for deep link")

// Link builds "<base>?text=<message>". Spaces are encoded as %20.
func Link(base, message string) string {
	return strings.TrimRight(base, "?") + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}

// DeepLinkChannel turns an order into a prefilled chat message link.
type DeepLinkChannel struct {
	base         string
	maxURLLength int
	formatter    catalog.Formatter
}

// NewDeepLinkChannel creates a channel for base, e.g. "https://wa.me/6281234567890".
// A non-positive maxURLLength disables the length limit.
func NewDeepLinkChannel(base string, maxURLLength int, formatter catalog.Formatter) *DeepLinkChannel {
	return &DeepLinkChannel{base: base, maxURLLength: maxURLLength, formatter: formatter}
}

func (c *DeepLinkChannel) Name() string { return ChannelDeepLink }

func (c *DeepLinkChannel) Dispatch(_ context.Context, o models.Order, p models.Product) (Result, error) {
	link, err := c.Link(o, p)
	if err != nil {
		return Result{}, err
	}
	return Result{RedirectURL: link}, nil
}

// Message renders the plain-text order summary.
func (c *DeepLinkChannel) Message(o models.Order, p models.Product) string {
	notes := o.Notes
	if notes == "" {
		notes = "-"
	}
	var b strings.Builder
	b.WriteString("Hello! I would like to order:\n\n")
	fmt.Fprintf(&b, "Product: %s\n", p.Name)
	fmt.Fprintf(&b, "Quantity: %d\n", o.Quantity)
	fmt.Fprintf(&b, "Total: %s\n\n", c.formatter.Format(o.TotalPrice))
	fmt.Fprintf(&b, "Name: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", o.CustomerEmail)
	fmt.Fprintf(&b, "Phone: %s\n", o.CustomerPhone)
	fmt.Fprintf(&b, "Address: %s\n", o.CustomerAddress)
	fmt.Fprintf(&b, "Notes: %s", notes)
	return b.String()
}

// Link builds the deep link for o. When the link is over the limit the notes
// are shortened, keeping as much of them as fits.
func (c *DeepLinkChannel) Link(o models.Order, p models.Product) (string, error) {
	build := func(notes string) string {
		o.Notes = notes
		return Link(c.base, c.Message(o, p))
	}

	full := build(o.Notes)
	if c.maxURLLength <= 0 || len(full) <= c.maxURLLength {
		return full, nil
	}

	notes := []rune(o.Notes)
	best := -1
	lo, hi := 1, len(notes)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		if len(build(string(notes[:mid])+ellipsis)) <= c.maxURLLength {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if best > 0 {
		return build(string(notes[:best]) + ellipsis), nil
	}
	if bare := build(""); len(bare) <= c.maxURLLength {
		return bare, nil
	}
	return "", ErrMessageTooLong
}
