// Package wishlist keeps a de-duplicated set of product ids per user,
// stored under wishlist:{userId}. The client joins the ids against the
// product list when rendering.
package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/arjunks/chantha-backend/internal/kvstore"
)

// Wishlist is the per-user document. Items are bare product ids.
type Wishlist struct {
	Items     []string `json:"items"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

var (
	ErrMissingProductID = errors.New("product ID is required")
	ErrProductNotFound  = errors.New("product not found")
)

// Service defines wishlist business logic.
type Service interface {
	GetWishlist(ctx context.Context, userID string) (*Wishlist, error)

	// AddItem appends the product id unless it is already present. The
	// product must exist.
	AddItem(ctx context.Context, userID, productID string) (*Wishlist, error)

	// RemoveItem drops the product id. Removing an absent id is a no-op.
	RemoveItem(ctx context.Context, userID, productID string) (*Wishlist, error)
}

type service struct {
	store kvstore.Store
}

// NewService creates a new wishlist service over the key-value gateway.
func NewService(store kvstore.Store) Service { return &service{store: store} }

func (s *service) GetWishlist(ctx context.Context, userID string) (*Wishlist, error) {
	raw, err := s.store.Get(ctx, "wishlist:"+userID)
	if errors.Is(err, kvstore.ErrKeyNotFound) {
		return &Wishlist{Items: []string{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return decode(raw)
}

func (s *service) AddItem(ctx context.Context, userID, productID string) (*Wishlist, error) {
	if productID == "" {
		return nil, ErrMissingProductID
	}
	if _, err := s.store.Get(ctx, "product:"+productID); err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	return s.mutate(ctx, userID, func(wl *Wishlist) {
		for _, id := range wl.Items {
			if id == productID {
				return
			}
		}
		wl.Items = append(wl.Items, productID)
	})
}

func (s *service) RemoveItem(ctx context.Context, userID, productID string) (*Wishlist, error) {
	if productID == "" {
		return nil, ErrMissingProductID
	}
	return s.mutate(ctx, userID, func(wl *Wishlist) {
		kept := wl.Items[:0]
		for _, id := range wl.Items {
			if id != productID {
				kept = append(kept, id)
			}
		}
		wl.Items = kept
	})
}

func (s *service) mutate(ctx context.Context, userID string, fn func(wl *Wishlist)) (*Wishlist, error) {
	var result *Wishlist
	err := s.store.Update(ctx, "wishlist:"+userID, func(old []byte) ([]byte, error) {
		wl := &Wishlist{Items: []string{}}
		if old != nil {
			var err error
			if wl, err = decode(old); err != nil {
				return nil, err
			}
		}
		fn(wl)
		wl.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		result = wl
		return json.Marshal(wl)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func decode(raw []byte) (*Wishlist, error) {
	wl := &Wishlist{}
	if err := json.Unmarshal(raw, wl); err != nil {
		return nil, err
	}
	if wl.Items == nil {
		wl.Items = []string{}
	}
	return wl, nil
}
