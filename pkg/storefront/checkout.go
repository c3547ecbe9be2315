package storefront

import (
	"context"
	"errors"
	"math"

	"github.com/arjunks/chantha-backend/pkg/client"
)

var (
	// ErrCartEmpty is returned when checkout starts with nothing to buy.
	ErrCartEmpty = errors.New("cart has no available items")
)

// Checkout drives the checkout page: it snapshots the cart, computes the
// display total, and places a cash-on-delivery order. The server reprices
// everything authoritatively; the client total is only a claim.
type Checkout struct {
	api *client.Client
}

func NewCheckout(api *client.Client) *Checkout {
	return &Checkout{api: api}
}

// Total computes the client-side display total over available lines.
func (co *Checkout) Total(lines []CartLine) float64 {
	var t float64
	for _, l := range lines {
		t += l.Subtotal()
	}
	return math.Round(t*100) / 100
}

// PlaceOrder submits the order built from the cart controller's current
// lines, then refreshes the cart, which the server has cleared.
// Unavailable lines are skipped rather than blocking the purchase.
func (co *Checkout) PlaceOrder(ctx context.Context, cart *CartController, addr client.ShippingAddress) (*client.Order, error) {
	lines := cart.Lines()

	items := make([]client.OrderItem, 0, len(lines))
	for _, l := range lines {
		if !l.Available() {
			continue
		}
		items = append(items, client.OrderItem{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			Price:     l.Product.Price,
		})
	}
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	order, err := co.api.CreateOrder(ctx, client.OrderRequest{
		Items:           items,
		TotalAmount:     co.Total(lines),
		ShippingAddress: addr,
		PaymentMethod:   "cash-on-delivery",
	})
	if err != nil {
		return nil, err
	}

	cart.Refresh(ctx)
	return order, nil
}
