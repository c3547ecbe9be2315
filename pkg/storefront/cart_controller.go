package storefront

import (
	"context"
	"sync"

	"github.com/arjunks/chantha-backend/pkg/client"
)

// CartLine is a cart item joined with its product listing. Product is nil
// when the listing has been deleted since the item was added; such lines
// render as unavailable instead of failing the whole drawer.
type CartLine struct {
	ProductID string
	Quantity  int
	Product   *client.Product
}

// Available reports whether the listing still exists.
func (l CartLine) Available() bool { return l.Product != nil }

// Subtotal is price times quantity, zero for unavailable lines.
func (l CartLine) Subtotal() float64 {
	if l.Product == nil {
		return 0
	}
	return l.Product.Price * float64(l.Quantity)
}

// CartController drives the cart drawer. Every mutation refetches the
// cart from the server rather than patching local state, then fires
// OnUpdate so header badges can refetch their own counts.
type CartController struct {
	api *client.Client

	mu    sync.Mutex
	state State
	lines []CartLine
	err   error

	// OnUpdate fires after every successful refresh.
	OnUpdate func()
}

func NewCartController(api *client.Client) *CartController {
	return &CartController{api: api, state: StateClosed}
}

// Open transitions the drawer to Loading and fetches the cart. Without a
// session it lands on SignedOut immediately, no requests made.
func (c *CartController) Open(ctx context.Context) {
	if !c.api.IsAuthenticated() {
		c.mu.Lock()
		c.state = StateSignedOut
		c.lines = nil
		c.mu.Unlock()
		return
	}
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()
	c.Refresh(ctx)
}

// Close resets the drawer.
func (c *CartController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateClosed
	c.err = nil
}

// Refresh refetches the cart and the product list and rejoins them.
// A fetch failure degrades to the empty view with the error kept for a
// one-time toast, never a crash.
func (c *CartController) Refresh(ctx context.Context) {
	cart, err := c.api.Cart(ctx)
	if err != nil {
		c.fail(err)
		return
	}
	products, err := c.api.Products(ctx)
	if err != nil {
		c.fail(err)
		return
	}

	byID := make(map[string]*client.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   byID[item.ProductID],
		})
	}

	c.mu.Lock()
	c.lines = lines
	if len(lines) == 0 {
		c.state = StateEmpty
	} else {
		c.state = StatePopulated
	}
	c.mu.Unlock()

	if c.OnUpdate != nil {
		c.OnUpdate()
	}
}

// Add puts quantity of a product in the cart and resynchronizes.
func (c *CartController) Add(ctx context.Context, productID string, quantity int) error {
	if _, err := c.api.AddToCart(ctx, productID, quantity); err != nil {
		return err
	}
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()
	c.Refresh(ctx)
	return nil
}

// Remove drops a product's line entirely and resynchronizes.
func (c *CartController) Remove(ctx context.Context, productID string) error {
	if _, err := c.api.RemoveFromCart(ctx, productID); err != nil {
		return err
	}
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()
	c.Refresh(ctx)
	return nil
}

// SetQuantity sets a line's quantity exactly; zero removes the line.
// One request, no remove-then-re-add dance.
func (c *CartController) SetQuantity(ctx context.Context, productID string, quantity int) error {
	if _, err := c.api.SetCartQuantity(ctx, productID, quantity); err != nil {
		return err
	}
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()
	c.Refresh(ctx)
	return nil
}

// State returns the drawer state.
func (c *CartController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Lines returns a copy of the joined cart lines.
func (c *CartController) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CartLine(nil), c.lines...)
}

// Count is the total quantity across lines, the header badge number.
func (c *CartController) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Total sums subtotals of available lines.
func (c *CartController) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	var t float64
	for _, l := range c.lines {
		t += l.Subtotal()
	}
	return t
}

// ConsumeError returns and clears the last fetch error, for a transient
// notification.
func (c *CartController) ConsumeError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.err
	c.err = nil
	return err
}

func (c *CartController) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.state = StateEmpty
	c.err = err
}
