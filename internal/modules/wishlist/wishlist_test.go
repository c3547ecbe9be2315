package wishlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunks/chantha-backend/internal/kvstore"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "product:p1", []byte(`{"id":"p1"}`)))
	return NewService(store)
}

func TestGetWishlistLazyDefault(t *testing.T) {
	svc := newTestService(t)
	wl, err := svc.GetWishlist(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, wl.Items)
	assert.Empty(t, wl.Items)
}

func TestAddItemIsIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	wl, err := svc.AddItem(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, wl.Items)

	wl, err = svc.AddItem(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, wl.Items, "adding twice keeps exactly one occurrence")
}

func TestAddItemValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "")
	assert.ErrorIs(t, err, ErrMissingProductID)

	_, err = svc.AddItem(ctx, "u1", "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddRemoveRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "p1")
	require.NoError(t, err)

	wl, err := svc.RemoveItem(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, wl.Items)

	wl, err = svc.GetWishlist(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, wl.Items)
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	svc := newTestService(t)
	wl, err := svc.RemoveItem(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, wl.Items)
}
