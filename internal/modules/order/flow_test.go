package order_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjunks/chantha-backend/internal/kvstore"
	"github.com/arjunks/chantha-backend/internal/modules/auth"
	"github.com/arjunks/chantha-backend/internal/modules/cart"
	"github.com/arjunks/chantha-backend/internal/modules/order"
	"github.com/arjunks/chantha-backend/internal/modules/product"
	"github.com/arjunks/chantha-backend/internal/modules/wishlist"
)

// newTestServer assembles the full route surface over a memory store,
// the same wiring cmd/api does.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := kvstore.NewMemoryStore()

	authService := auth.NewService(auth.NewKVRepository(store), []byte("test-secret"))
	productService := product.NewService(product.NewKVRepository(store))
	cartService := cart.NewService(cart.NewKVRepository(store))
	wishlistService := wishlist.NewService(store)
	orderService, err := order.NewService(order.NewKVRepository(store))
	require.NoError(t, err)

	router := chi.NewRouter()
	auth.NewHandler(authService).RegisterRoutes(router)
	product.NewHandler(productService, authService).RegisterRoutes(router)
	cart.NewHandler(cartService, authService).RegisterRoutes(router)
	wishlist.NewHandler(wishlistService, authService).RegisterRoutes(router)
	order.NewHandler(orderService, authService).RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestBuyerFlow(t *testing.T) {
	srv := newTestServer(t)

	// sign up and sign in
	code := call(t, srv, http.MethodPost, "/auth/signup", "",
		map[string]string{"email": "buyer@demo.com", "password": "demo123", "name": "Demo Buyer"}, nil)
	require.Equal(t, http.StatusOK, code)

	var signin struct {
		AccessToken string `json:"accessToken"`
	}
	code = call(t, srv, http.MethodPost, "/auth/signin", "",
		map[string]string{"email": "buyer@demo.com", "password": "demo123"}, &signin)
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, signin.AccessToken)

	// a seller lists a product
	var sellerSignin struct {
		AccessToken string `json:"accessToken"`
	}
	call(t, srv, http.MethodPost, "/auth/signup", "",
		map[string]string{"email": "seller@demo.com", "password": "demo123"}, nil)
	call(t, srv, http.MethodPost, "/auth/signin", "",
		map[string]string{"email": "seller@demo.com", "password": "demo123"}, &sellerSignin)
	code = call(t, srv, http.MethodPost, "/products", sellerSignin.AccessToken,
		map[string]interface{}{"id": "prod-banana-chips-001", "name": "Banana Chips", "price": 299}, nil)
	require.Equal(t, http.StatusOK, code)

	// add to cart, twice: quantities merge
	token := signin.AccessToken
	code = call(t, srv, http.MethodPost, "/cart/add", token,
		map[string]interface{}{"productId": "prod-banana-chips-001", "quantity": 2}, nil)
	require.Equal(t, http.StatusOK, code)
	call(t, srv, http.MethodPost, "/cart/add", token,
		map[string]interface{}{"productId": "prod-banana-chips-001", "quantity": 1}, nil)

	var cartResp struct {
		Cart struct {
			Items []struct {
				ProductID string `json:"productId"`
				Quantity  int    `json:"quantity"`
			} `json:"items"`
		} `json:"cart"`
	}
	code = call(t, srv, http.MethodGet, "/cart", token, nil, &cartResp)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, cartResp.Cart.Items, 1)
	assert.Equal(t, 3, cartResp.Cart.Items[0].Quantity)

	// place the order
	var orderResp struct {
		Order struct {
			ID          string  `json:"id"`
			TotalAmount float64 `json:"totalAmount"`
			Status      string  `json:"status"`
		} `json:"order"`
	}
	code = call(t, srv, http.MethodPost, "/orders", token, map[string]interface{}{
		"items": []map[string]interface{}{{"productId": "prod-banana-chips-001", "quantity": 3}},
		"shippingAddress": map[string]string{
			"fullName": "Demo Buyer", "email": "buyer@demo.com", "phone": "9876543210",
			"addressLine1": "12 Beach Road", "city": "Kochi", "state": "Kerala", "postalCode": "682001",
		},
	}, &orderResp)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 897.0, orderResp.Order.TotalAmount)
	assert.Equal(t, "pending", orderResp.Order.Status)

	// cart is empty afterwards
	code = call(t, srv, http.MethodGet, "/cart", token, nil, &cartResp)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, cartResp.Cart.Items)

	// the buyer sees the order; another user gets 403
	var orders struct {
		Orders []json.RawMessage `json:"orders"`
	}
	code = call(t, srv, http.MethodGet, "/orders", token, nil, &orders)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, orders.Orders, 1)

	code = call(t, srv, http.MethodGet, "/orders/"+orderResp.Order.ID, sellerSignin.AccessToken, nil, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// unauthenticated mutation attempts are rejected outright
	code = call(t, srv, http.MethodGet, "/cart", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code = call(t, srv, http.MethodPost, "/orders", "", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestWishlistRoundTripOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	var signin struct {
		AccessToken string `json:"accessToken"`
	}
	call(t, srv, http.MethodPost, "/auth/signup", "",
		map[string]string{"email": "a@demo.com", "password": "pw"}, nil)
	call(t, srv, http.MethodPost, "/auth/signin", "",
		map[string]string{"email": "a@demo.com", "password": "pw"}, &signin)
	token := signin.AccessToken

	call(t, srv, http.MethodPost, "/products", token,
		map[string]interface{}{"id": "X", "name": "Thing", "price": 10}, nil)

	code := call(t, srv, http.MethodPost, "/wishlist/add", token, map[string]string{"productId": "X"}, nil)
	require.Equal(t, http.StatusOK, code)
	code = call(t, srv, http.MethodPost, "/wishlist/remove", token, map[string]string{"productId": "X"}, nil)
	require.Equal(t, http.StatusOK, code)

	var wl struct {
		Wishlist struct {
			Items []string `json:"items"`
		} `json:"wishlist"`
	}
	code = call(t, srv, http.MethodGet, "/wishlist", token, nil, &wl)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, wl.Wishlist.Items)

	// adding a product that does not exist is a 404
	code = call(t, srv, http.MethodPost, "/wishlist/add", token, map[string]string{"productId": "nope"}, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
