package cart

import "errors"

// Item is one line of a cart. At most one Item exists per product; adding
// the same product again merges into the existing line's quantity.
type Item struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	AddedAt   string `json:"addedAt"`
}

// Cart is the per-user document stored under cart:{userId}. It is created
// lazily: a user with no stored cart has the empty cart.
type Cart struct {
	Items []Item `json:"items"`
}

var (
	ErrMissingProductID = errors.New("product ID is required")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
)
