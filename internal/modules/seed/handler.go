// Package seed holds the demo-only bootstrap endpoints. They perform
// unauthenticated writes, so main registers them only when DEMO_SEED=1;
// a deployed instance without the flag has no such surface.
package seed

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/arjunks/chantha-backend/internal/modules/auth"
	"github.com/arjunks/chantha-backend/internal/modules/product"
)

// DemoAccount is one of the fixed demo identities.
type DemoAccount struct {
	Email    string `json:"email"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

var demoAccounts = []DemoAccount{
	{Email: "buyer@demo.com", Password: "demo123", Name: "Demo Buyer", Role: "buyer"},
	{Email: "seller@demo.com", Password: "demo123", Name: "Demo Seller", Role: "seller"},
	{Email: "admin@demo.com", Password: "demo123", Name: "Demo Admin", Role: "admin"},
}

// Handler exposes the demo seeding endpoints.
type Handler struct {
	products product.Service
	accounts auth.Service
}

func NewHandler(products product.Service, accounts auth.Service) *Handler {
	return &Handler{products: products, accounts: accounts}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/seed-product", h.seedProduct)
	r.Post("/seed-demo-accounts", h.seedDemoAccounts)
}

func (h *Handler) seedProduct(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	stored, created, err := h.products.SeedProduct(r.Context(), &p)
	if err != nil {
		if errors.Is(err, product.ErrMissingRequired) {
			respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		zap.S().Errorw("seed product failed", "productId", p.ID, "error", err)
		respond(w, http.StatusInternalServerError, map[string]string{"error": "failed to seed product"})
		return
	}

	body := map[string]interface{}{"success": true, "product": stored}
	if !created {
		body["message"] = "Product already exists"
	}
	respond(w, http.StatusOK, body)
}

func (h *Handler) seedDemoAccounts(w http.ResponseWriter, r *http.Request) {
	type result struct {
		Email  string `json:"email"`
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}

	results := make([]result, 0, len(demoAccounts))
	for _, acct := range demoAccounts {
		_, err := h.accounts.SignUp(r.Context(), acct.Email, acct.Password, acct.Name, acct.Role)
		switch {
		case err == nil:
			results = append(results, result{Email: acct.Email, Status: "created"})
		case errors.Is(err, auth.ErrEmailTaken):
			results = append(results, result{Email: acct.Email, Status: "already_exists"})
		default:
			zap.S().Errorw("seed demo account failed", "email", acct.Email, "error", err)
			results = append(results, result{Email: acct.Email, Status: "error", Error: err.Error()})
		}
	}
	respond(w, http.StatusOK, map[string]interface{}{"success": true, "results": results})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
