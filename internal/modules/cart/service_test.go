package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunks/chantha-backend/internal/kvstore"
)

func newTestService(t *testing.T) (Service, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), "product:p1", []byte(`{"id":"p1","price":100}`)))
	require.NoError(t, store.Set(context.Background(), "product:p2", []byte(`{"id":"p2","price":50}`)))
	return NewService(NewKVRepository(store)), store
}

func TestGetCartLazyDefault(t *testing.T) {
	svc, _ := newTestService(t)
	c, err := svc.GetCart(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotNil(t, c.Items)
	assert.Empty(t, c.Items)
}

func TestAddItemMergesQuantities(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.AddItem(ctx, "u1", "p1", 2)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.NotEmpty(t, c.Items[0].AddedAt)

	c, err = svc.AddItem(ctx, "u1", "p1", 3)
	require.NoError(t, err)
	require.Len(t, c.Items, 1, "same product must merge, not duplicate")
	assert.Equal(t, 5, c.Items[0].Quantity)

	c, err = svc.AddItem(ctx, "u1", "p2", 0) // quantity defaults to 1
	require.NoError(t, err)
	require.Len(t, c.Items, 2)
	assert.Equal(t, 1, c.Items[1].Quantity)
}

func TestAddItemValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "", 1)
	assert.ErrorIs(t, err, ErrMissingProductID)

	_, err = svc.AddItem(ctx, "u1", "nope", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "p1", 1)
	require.NoError(t, err)

	c, err := svc.RemoveItem(ctx, "u1", "p2")
	require.NoError(t, err, "removing an absent product is a no-op success")
	assert.Len(t, c.Items, 1)

	c, err = svc.RemoveItem(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)

	c, err = svc.RemoveItem(ctx, "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestSetQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	c, err := svc.SetQuantity(ctx, "u1", "p1", 4)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, 4, c.Items[0].Quantity)

	c, err = svc.SetQuantity(ctx, "u1", "p1", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Items[0].Quantity)

	c, err = svc.SetQuantity(ctx, "u1", "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, c.Items, "quantity zero removes the line")

	_, err = svc.SetQuantity(ctx, "u1", "nope", 2)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestClear(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "p1", 2)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "u1", "p2", 1)
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "u1"))

	c, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "p1", 2)
	require.NoError(t, err)

	c, err := svc.GetCart(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}
