package storefront

import (
	"context"
	"sync"

	"github.com/arjunks/chantha-backend/pkg/client"
)

// WishlistLine is a saved product id joined with its listing; Product is
// nil when the listing no longer exists.
type WishlistLine struct {
	ProductID string
	Product   *client.Product
}

// Available reports whether the listing still exists.
func (l WishlistLine) Available() bool { return l.Product != nil }

// WishlistController drives the wishlist drawer, same lifecycle as the
// cart drawer.
type WishlistController struct {
	api *client.Client

	mu    sync.Mutex
	state State
	lines []WishlistLine
	err   error

	// OnUpdate fires after every successful refresh.
	OnUpdate func()
}

func NewWishlistController(api *client.Client) *WishlistController {
	return &WishlistController{api: api, state: StateClosed}
}

func (c *WishlistController) Open(ctx context.Context) {
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

func (c *WishlistController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateClosed
	c.err = nil
}

func (c *WishlistController) Refresh(ctx context.Context) {
	wl, err := c.api.Wishlist(ctx)
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

	lines := make([]WishlistLine, 0, len(wl.Items))
	for _, id := range wl.Items {
		lines = append(lines, WishlistLine{ProductID: id, Product: byID[id]})
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

// Add saves a product and resynchronizes. Saving twice is a no-op
// server-side.
func (c *WishlistController) Add(ctx context.Context, productID string) error {
	if _, err := c.api.AddToWishlist(ctx, productID); err != nil {
		return err
	}
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()
	c.Refresh(ctx)
	return nil
}

// Remove drops a saved product and resynchronizes.
func (c *WishlistController) Remove(ctx context.Context, productID string) error {
	if _, err := c.api.RemoveFromWishlist(ctx, productID); err != nil {
		return err
	}
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()
	c.Refresh(ctx)
	return nil
}

// MoveToCart adds the saved product to the cart, then removes it from
// the wishlist. Not atomic; a failure between the two calls leaves the
// product in both places, which the next refresh shows honestly.
func (c *WishlistController) MoveToCart(ctx context.Context, productID string) error {
	if _, err := c.api.AddToCart(ctx, productID, 1); err != nil {
		return err
	}
	return c.Remove(ctx, productID)
}

func (c *WishlistController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *WishlistController) Lines() []WishlistLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]WishlistLine(nil), c.lines...)
}

// Count is the number of saved products, the header badge number.
func (c *WishlistController) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// ConsumeError returns and clears the last fetch error.
func (c *WishlistController) ConsumeError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.err
	c.err = nil
	return err
}

func (c *WishlistController) fail(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.state = StateEmpty
	c.err = err
}
