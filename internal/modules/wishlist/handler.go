package wishlist

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/arjunks/chantha-backend/internal/modules/auth"
)

// Handler exposes the wishlist HTTP endpoints.
type Handler struct {
	service     Service
	authService auth.Service
}

func NewHandler(service Service, authService auth.Service) *Handler {
	return &Handler{service: service, authService: authService}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireUser(h.authService))
		r.Get("/wishlist", h.getWishlist)
		r.Post("/wishlist/add", h.addItem)
		r.Post("/wishlist/remove", h.removeItem)
	})
}

func (h *Handler) getWishlist(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())
	wl, err := h.service.GetWishlist(r.Context(), user.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"success": true, "wishlist": wl})
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	var req struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	wl, err := h.service.AddItem(r.Context(), user.ID, req.ProductID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"success": true, "wishlist": wl})
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	var req struct {
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	wl, err := h.service.RemoveItem(r.Context(), user.ID, req.ProductID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"success": true, "wishlist": wl})
}

func respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, ErrMissingProductID):
		code = http.StatusBadRequest
	case errors.Is(err, ErrProductNotFound):
		code = http.StatusNotFound
	default:
		zap.S().Errorw("wishlist request failed", "error", err)
		msg = "internal error"
	}
	respond(w, code, map[string]string{"error": msg})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
