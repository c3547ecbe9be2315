package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes the authentication HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/signup", h.signUp)
	r.Post("/auth/signin", h.signIn)
	r.Group(func(r chi.Router) {
		r.Use(RequireUser(h.service))
		r.Get("/auth/session", h.session)
		r.Post("/auth/signout", h.signOut)
	})
}

func (h *Handler) signUp(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	user, err := h.service.SignUp(r.Context(), req.Email, req.Password, req.Name, "")
	if err != nil {
		zap.S().Infow("signup failed", "email", req.Email, "error", err)
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"userId":  user.ID,
		"message": "User created successfully",
	})
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	session, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		code := http.StatusUnauthorized
		if !errors.Is(err, ErrInvalidCredentials) {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"accessToken": session.AccessToken,
		"user":        session.User,
	})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	respond(w, http.StatusOK, map[string]interface{}{"success": true, "user": user})
}

func (h *Handler) signOut(w http.ResponseWriter, r *http.Request) {
	token, err := BearerToken(r.Header.Get("Authorization"))
	if err != nil {
		unauthorized(w, err)
		return
	}
	if err := h.service.SignOut(r.Context(), token); err != nil {
		zap.S().Errorw("signout failed", "error", err)
		respond(w, http.StatusInternalServerError, map[string]string{"error": "failed to sign out"})
		return
	}
	respond(w, http.StatusOK, map[string]interface{}{"success": true, "message": "Signed out successfully"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
