package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/arjunks/chantha-backend/internal/kvstore"
)

// Repository persists carts. Mutate runs as a single atomic
// read-modify-write so concurrent mutations of one user's cart cannot
// lose each other's updates.
type Repository interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	Mutate(ctx context.Context, userID string, fn func(c *Cart) error) (*Cart, error)
	ProductExists(ctx context.Context, productID string) (bool, error)
}

type kvRepository struct {
	store kvstore.Store
}

// NewKVRepository creates a key-value backed cart repository.
func NewKVRepository(store kvstore.Store) Repository {
	return &kvRepository{store: store}
}

func (r *kvRepository) Get(ctx context.Context, userID string) (*Cart, error) {
	raw, err := r.store.Get(ctx, "cart:"+userID)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return &Cart{Items: []Item{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

func (r *kvRepository) Mutate(ctx context.Context, userID string, fn func(c *Cart) error) (*Cart, error) {
	var result *Cart
	err := r.store.Update(ctx, "cart:"+userID, func(old []byte) ([]byte, error) {
		c := &Cart{Items: []Item{}}
		if old != nil {
			var err error
			if c, err = decode(old); err != nil {
				return nil, err
			}
		}
		if err := fn(c); err != nil {
			return nil, err
		}
		result = c
		return json.Marshal(c)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *kvRepository) ProductExists(ctx context.Context, productID string) (bool, error) {
	_, err := r.store.Get(ctx, "product:"+productID)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func decode(raw []byte) (*Cart, error) {
	c := &Cart{}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, err
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	return c, nil
}
