package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arjunks/chantha-backend/internal/kvstore"
)

// Repository persists orders and the per-user index, and resolves the
// product data orders are priced from.
type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	GetProductPrice(ctx context.Context, productID string) (float64, error)
	ClearCart(ctx context.Context, userID string) error
}

var errProductMissing = errors.New("product missing")

type kvRepository struct {
	store kvstore.Store
}

// NewKVRepository creates a key-value backed order repository.
func NewKVRepository(store kvstore.Store) Repository {
	return &kvRepository{store: store}
}

func (r *kvRepository) CreateOrder(ctx context.Context, o *Order) error {
	raw, err := json.Marshal(o)
	if err != nil {
		return err
	}
	if err := r.store.Set(ctx, "order:"+o.ID, raw); err != nil {
		return err
	}
	// Secondary index so listing a user's orders scans only their prefix.
	ref, err := json.Marshal(map[string]string{"orderId": o.ID})
	if err != nil {
		return err
	}
	return r.store.Set(ctx, fmt.Sprintf("order-user:%s:%s", o.UserID, o.ID), ref)
}

func (r *kvRepository) GetByID(ctx context.Context, id string) (*Order, error) {
	raw, err := r.store.Get(ctx, "order:"+id)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	o := &Order{}
	if err := json.Unmarshal(raw, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *kvRepository) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	refs, err := r.store.GetByPrefix(ctx, "order-user:"+userID+":")
	if err != nil {
		return nil, err
	}
	orders := make([]*Order, 0, len(refs))
	for _, raw := range refs {
		var ref struct {
			OrderID string `json:"orderId"`
		}
		if err := json.Unmarshal(raw, &ref); err != nil {
			return nil, err
		}
		o, err := r.GetByID(ctx, ref.OrderID)
		if errors.Is(err, ErrNotFound) {
			continue // index entry outlived the order document
		}
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *kvRepository) GetProductPrice(ctx context.Context, productID string) (float64, error) {
	raw, err := r.store.Get(ctx, "product:"+productID)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return 0, errProductMissing
	}
	if err != nil {
		return 0, err
	}
	var p struct {
		Price float64 `json:"price"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return 0, err
	}
	return p.Price, nil
}

func (r *kvRepository) ClearCart(ctx context.Context, userID string) error {
	empty, err := json.Marshal(map[string]interface{}{"items": []interface{}{}})
	if err != nil {
		return err
	}
	return r.store.Set(ctx, "cart:"+userID, empty)
}
