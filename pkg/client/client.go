// Package client is the typed API wrapper for the Chantha storefront
// backend. It attaches the session bearer token (falling back to the
// public anon key for unauthenticated browsing), normalizes non-2xx
// responses into *APIError, and self-heals stale sessions: any 401 wipes
// the stored token and user.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// APIError carries the server-provided message for a failed request, or
// an HTTP-status fallback when the body had none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to one backend instance. Safe for concurrent use.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	session    SessionStore

	// OnSessionExpired fires after a 401 has wiped the stored session,
	// so UIs can flip to their signed-out state.
	OnSessionExpired func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAnonKey sets the public credential used for unauthenticated reads.
func WithAnonKey(key string) Option {
	return func(c *Client) { c.anonKey = key }
}

// New creates a client with session persisted through store.
func New(baseURL string, store SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		session:    store,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentUser returns the locally stored user record, if any.
func (c *Client) CurrentUser() *User {
	_, user, _ := c.session.Load()
	return user
}

// IsAuthenticated reports whether a bearer token is stored locally.
func (c *Client) IsAuthenticated() bool {
	token, _, _ := c.session.Load()
	return token != ""
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	token, _, _ := c.session.Load()
	if token == "" {
		token = c.anonKey
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			// Stale or revoked token: drop it so the next call starts clean.
			c.session.Clear()
			if c.OnSessionExpired != nil {
				c.OnSessionExpired()
			}
		}
		var errBody struct {
			Error string `json:"error"`
		}
		msg := http.StatusText(resp.StatusCode)
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil && errBody.Error != "" {
			msg = errBody.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ── Health ──────────────────────────────────────────────────

func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return fmt.Errorf("unexpected health status %q", out.Status)
	}
	return nil
}

// ── Authentication ──────────────────────────────────────────

func (c *Client) SignUp(ctx context.Context, email, password, name string) (string, error) {
	var out struct {
		UserID string `json:"userId"`
	}
	body := map[string]string{"email": email, "password": password, "name": name}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", body, &out); err != nil {
		return "", err
	}
	return out.UserID, nil
}

// SignIn authenticates and stores the returned token and user record.
func (c *Client) SignIn(ctx context.Context, email, password string) (*User, error) {
	var out struct {
		AccessToken string `json:"accessToken"`
		User        *User  `json:"user"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/signin", body, &out); err != nil {
		return nil, err
	}
	if err := c.session.Save(out.AccessToken, out.User); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) Session(ctx context.Context) (*User, error) {
	var out struct {
		User *User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/session", nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

// SignOut revokes the token server-side; the local session is cleared
// even when the request fails.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/signout", nil, nil)
	c.session.Clear()
	return err
}

// ── Products ────────────────────────────────────────────────

func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out struct {
		Products []Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) Product(ctx context.Context, id string) (*Product, error) {
	var out struct {
		Product *Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, "/products/"+id, nil, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

func (c *Client) CreateProduct(ctx context.Context, p Product) (*Product, error) {
	var out struct {
		Product *Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPost, "/products", p, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*Product, error) {
	var out struct {
		Product *Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPut, "/products/"+id, patch, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, nil, nil)
}

// SeedProduct hits the demo seeding back door; it only exists on
// instances started with DEMO_SEED=1.
func (c *Client) SeedProduct(ctx context.Context, p Product) (*Product, error) {
	var out struct {
		Product *Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPost, "/seed-product", p, &out); err != nil {
		return nil, err
	}
	return out.Product, nil
}

// SeedDemoAccounts creates the fixed demo identities.
func (c *Client) SeedDemoAccounts(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/seed-demo-accounts", nil, nil)
}

// ── Cart ────────────────────────────────────────────────────

func (c *Client) Cart(ctx context.Context) (*Cart, error) {
	var out struct {
		Cart *Cart `json:"cart"`
	}
	if err := c.do(ctx, http.MethodGet, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return out.Cart, nil
}

func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) (*Cart, error) {
	var out struct {
		Cart *Cart `json:"cart"`
	}
	body := map[string]interface{}{"productId": productID, "quantity": quantity}
	if err := c.do(ctx, http.MethodPost, "/cart/add", body, &out); err != nil {
		return nil, err
	}
	return out.Cart, nil
}

func (c *Client) RemoveFromCart(ctx context.Context, productID string) (*Cart, error) {
	var out struct {
		Cart *Cart `json:"cart"`
	}
	body := map[string]string{"productId": productID}
	if err := c.do(ctx, http.MethodPost, "/cart/remove", body, &out); err != nil {
		return nil, err
	}
	return out.Cart, nil
}

// SetCartQuantity sets a line's quantity exactly; zero removes the line.
func (c *Client) SetCartQuantity(ctx context.Context, productID string, quantity int) (*Cart, error) {
	var out struct {
		Cart *Cart `json:"cart"`
	}
	body := map[string]interface{}{"productId": productID, "quantity": quantity}
	if err := c.do(ctx, http.MethodPost, "/cart/quantity", body, &out); err != nil {
		return nil, err
	}
	return out.Cart, nil
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/cart/clear", nil, nil)
}

// ── Wishlist ────────────────────────────────────────────────

func (c *Client) Wishlist(ctx context.Context) (*Wishlist, error) {
	var out struct {
		Wishlist *Wishlist `json:"wishlist"`
	}
	if err := c.do(ctx, http.MethodGet, "/wishlist", nil, &out); err != nil {
		return nil, err
	}
	return out.Wishlist, nil
}

func (c *Client) AddToWishlist(ctx context.Context, productID string) (*Wishlist, error) {
	var out struct {
		Wishlist *Wishlist `json:"wishlist"`
	}
	body := map[string]string{"productId": productID}
	if err := c.do(ctx, http.MethodPost, "/wishlist/add", body, &out); err != nil {
		return nil, err
	}
	return out.Wishlist, nil
}

func (c *Client) RemoveFromWishlist(ctx context.Context, productID string) (*Wishlist, error) {
	var out struct {
		Wishlist *Wishlist `json:"wishlist"`
	}
	body := map[string]string{"productId": productID}
	if err := c.do(ctx, http.MethodPost, "/wishlist/remove", body, &out); err != nil {
		return nil, err
	}
	return out.Wishlist, nil
}

// ── Orders ──────────────────────────────────────────────────

func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var out struct {
		Order *Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/orders", req, &out); err != nil {
		return nil, err
	}
	return out.Order, nil
}

func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var out struct {
		Orders []Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) Order(ctx context.Context, id string) (*Order, error) {
	var out struct {
		Order *Order `json:"order"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, nil, &out); err != nil {
		return nil, err
	}
	return out.Order, nil
}
