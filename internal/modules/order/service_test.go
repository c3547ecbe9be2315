package order

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunks/chantha-backend/internal/kvstore"
)

var testAddress = ShippingAddress{
	FullName:     "Demo Buyer",
	Email:        "buyer@demo.com",
	Phone:        "9876543210",
	AddressLine1: "12 Beach Road",
	City:         "Kochi",
	State:        "Kerala",
	PostalCode:   "682001",
}

func newTestService(t *testing.T) (Service, kvstore.Store) {
	t.Helper()
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "product:p1", []byte(`{"id":"p1","price":299}`)))
	require.NoError(t, store.Set(ctx, "product:p2", []byte(`{"id":"p2","price":150.5}`)))
	svc, err := NewService(NewKVRepository(store))
	require.NoError(t, err)
	return svc, store
}

func TestCreateOrderRepricesAndClearsCart(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	// buyer has a cart going in
	require.NoError(t, store.Set(ctx, "cart:u1", []byte(`{"items":[{"productId":"p1","quantity":2}]}`)))

	o, err := svc.CreateOrder(ctx, "u1", CreateRequest{
		Items: []Item{
			{ProductID: "p1", Quantity: 2, Price: 1}, // client price claims are ignored
			{ProductID: "p2", Quantity: 1},
		},
		ShippingAddress: testAddress,
	})
	require.NoError(t, err)

	assert.Equal(t, "u1", o.UserID)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentCashOnDelivery, o.PaymentMethod)
	assert.NotEmpty(t, o.CreatedAt)
	require.Len(t, o.Items, 2)
	assert.Equal(t, 299.0, o.Items[0].Price)
	assert.Equal(t, 748.5, o.TotalAmount)

	// cart reset as a side effect
	raw, err := store.Get(ctx, "cart:u1")
	require.NoError(t, err)
	var cart struct {
		Items []json.RawMessage `json:"items"`
	}
	require.NoError(t, json.Unmarshal(raw, &cart))
	assert.Empty(t, cart.Items)
}

func TestCreateOrderRejectsForgedTotal(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateOrder(context.Background(), "u1", CreateRequest{
		Items:           []Item{{ProductID: "p1", Quantity: 1}},
		TotalAmount:     1, // real total is 299
		ShippingAddress: testAddress,
	})
	assert.ErrorIs(t, err, ErrTotalMismatch)
}

func TestCreateOrderAcceptsMatchingTotal(t *testing.T) {
	svc, _ := newTestService(t)

	o, err := svc.CreateOrder(context.Background(), "u1", CreateRequest{
		Items:           []Item{{ProductID: "p1", Quantity: 2}},
		TotalAmount:     598,
		ShippingAddress: testAddress,
	})
	require.NoError(t, err)
	assert.Equal(t, 598.0, o.TotalAmount)
}

func TestCreateOrderValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, "u1", CreateRequest{ShippingAddress: testAddress})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.CreateOrder(ctx, "u1", CreateRequest{
		Items: []Item{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrMissingAddress)

	_, err = svc.CreateOrder(ctx, "u1", CreateRequest{
		Items:           []Item{{ProductID: "p1", Quantity: 1}},
		ShippingAddress: testAddress,
		PaymentMethod:   "card",
	})
	assert.ErrorIs(t, err, ErrBadPayment)

	_, err = svc.CreateOrder(ctx, "u1", CreateRequest{
		Items:           []Item{{ProductID: "gone", Quantity: 1}},
		ShippingAddress: testAddress,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no longer available")
}

func TestListUserOrdersUsesIndex(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, user := range []string{"u1", "u1", "u2"} {
		_, err := svc.CreateOrder(ctx, user, CreateRequest{
			Items:           []Item{{ProductID: "p1", Quantity: 1}},
			ShippingAddress: testAddress,
		})
		require.NoError(t, err)
	}

	orders, err := svc.ListUserOrders(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "u1", o.UserID)
	}

	orders, err = svc.ListUserOrders(ctx, "u3")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGetOrderOwnership(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	o, err := svc.CreateOrder(ctx, "u1", CreateRequest{
		Items:           []Item{{ProductID: "p1", Quantity: 1}},
		ShippingAddress: testAddress,
	})
	require.NoError(t, err)

	got, err := svc.GetOrder(ctx, o.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)

	_, err = svc.GetOrder(ctx, o.ID, "u2")
	assert.ErrorIs(t, err, ErrNotOwner)

	_, err = svc.GetOrder(ctx, "order-missing", "u1")
	assert.ErrorIs(t, err, ErrNotFound)
}
