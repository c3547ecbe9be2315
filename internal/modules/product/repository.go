package product

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/arjunks/chantha-backend/internal/kvstore"
)

const keyPrefix = "product:"

// Repository defines listing storage over the key-value gateway.
type Repository interface {
	Put(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	Delete(ctx context.Context, id string) error
}

type kvRepository struct {
	store kvstore.Store
}

// NewKVRepository creates a key-value backed product repository.
func NewKVRepository(store kvstore.Store) Repository {
	return &kvRepository{store: store}
}

func (r *kvRepository) Put(ctx context.Context, p *Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, keyPrefix+p.ID, raw)
}

func (r *kvRepository) GetByID(ctx context.Context, id string) (*Product, error) {
	raw, err := r.store.Get(ctx, keyPrefix+id)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p := &Product{}
	if err := json.Unmarshal(raw, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *kvRepository) List(ctx context.Context) ([]*Product, error) {
	raws, err := r.store.GetByPrefix(ctx, keyPrefix)
	if err != nil {
		return nil, err
	}
	products := make([]*Product, 0, len(raws))
	for _, raw := range raws {
		p := &Product{}
		if err := json.Unmarshal(raw, p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *kvRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, keyPrefix+id)
}
