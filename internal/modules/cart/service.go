package cart

import (
	"context"
	"time"
)

// Service defines cart business logic. All mutations return the full
// updated cart so clients can resynchronize in one round trip.
type Service interface {
	GetCart(ctx context.Context, userID string) (*Cart, error)

	// AddItem merges quantity into an existing line for the product, or
	// appends a new line. The product must exist.
	AddItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error)

	// RemoveItem drops the line for the product entirely. Removing an
	// absent product is a no-op success.
	RemoveItem(ctx context.Context, userID, productID string) (*Cart, error)

	// SetQuantity sets a line's quantity exactly; zero or less removes the
	// line. Executed as one atomic read-modify-write.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) (*Cart, error)

	// Clear resets the cart to empty.
	Clear(ctx context.Context, userID string) error
}

type service struct{ repo Repository }

// NewService creates a new cart service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) GetCart(ctx context.Context, userID string) (*Cart, error) {
	return s.repo.Get(ctx, userID)
}

func (s *service) AddItem(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	if productID == "" {
		return nil, ErrMissingProductID
	}
	if quantity <= 0 {
		quantity = 1
	}

	exists, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProductNotFound
	}

	return s.repo.Mutate(ctx, userID, func(c *Cart) error {
		for i := range c.Items {
			if c.Items[i].ProductID == productID {
				c.Items[i].Quantity += quantity
				return nil
			}
		}
		c.Items = append(c.Items, Item{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now().UTC().Format(time.RFC3339),
		})
		return nil
	})
}

func (s *service) RemoveItem(ctx context.Context, userID, productID string) (*Cart, error) {
	if productID == "" {
		return nil, ErrMissingProductID
	}
	return s.repo.Mutate(ctx, userID, func(c *Cart) error {
		kept := c.Items[:0]
		for _, item := range c.Items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		c.Items = kept
		return nil
	})
}

func (s *service) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*Cart, error) {
	if productID == "" {
		return nil, ErrMissingProductID
	}
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, productID)
	}

	exists, err := s.repo.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrProductNotFound
	}

	return s.repo.Mutate(ctx, userID, func(c *Cart) error {
		for i := range c.Items {
			if c.Items[i].ProductID == productID {
				c.Items[i].Quantity = quantity
				return nil
			}
		}
		c.Items = append(c.Items, Item{
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now().UTC().Format(time.RFC3339),
		})
		return nil
	})
}

func (s *service) Clear(ctx context.Context, userID string) error {
	_, err := s.repo.Mutate(ctx, userID, func(c *Cart) error {
		c.Items = []Item{}
		return nil
	})
	return err
}
