package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/arjunks/chantha-backend/internal/kvstore"
	"github.com/arjunks/chantha-backend/internal/modules/auth"
	"github.com/arjunks/chantha-backend/internal/modules/cart"
	"github.com/arjunks/chantha-backend/internal/modules/order"
	"github.com/arjunks/chantha-backend/internal/modules/product"
	"github.com/arjunks/chantha-backend/internal/modules/seed"
	"github.com/arjunks/chantha-backend/internal/modules/wishlist"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment as is")
	}

	logger, err := buildLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	store, err := openStore()
	if err != nil {
		zap.S().Fatalw("failed to open key-value store", "error", err)
	}
	defer store.Close()

	jwtKey := []byte(os.Getenv("JWT_SECRET"))
	if len(jwtKey) == 0 {
		zap.S().Fatal("JWT_SECRET is required")
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ── Identity ────────────────────────────────────────────
	authRepo := auth.NewKVRepository(store)
	authService := auth.NewService(authRepo, jwtKey)
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Marketplace ─────────────────────────────────────────
	productRepo := product.NewKVRepository(store)
	productService := product.NewService(productRepo)
	product.NewHandler(productService, authService).RegisterRoutes(router)

	cartRepo := cart.NewKVRepository(store)
	cartService := cart.NewService(cartRepo)
	cart.NewHandler(cartService, authService).RegisterRoutes(router)

	wishlistService := wishlist.NewService(store)
	wishlist.NewHandler(wishlistService, authService).RegisterRoutes(router)

	orderRepo := order.NewKVRepository(store)
	orderService, err := order.NewService(orderRepo)
	if err != nil {
		zap.S().Fatalw("failed to build order service", "error", err)
	}
	order.NewHandler(orderService, authService).RegisterRoutes(router)

	// ── Demo back doors (never on by default) ───────────────
	if os.Getenv("DEMO_SEED") == "1" {
		zap.S().Warn("demo seed endpoints enabled")
		seed.NewHandler(productService, authService).RegisterRoutes(router)
	}

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Chantha API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func buildLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// openStore picks the key-value backend from KV_BACKEND: bolt (default),
// postgres, or memory for throwaway demo runs.
func openStore() (kvstore.Store, error) {
	switch backend := os.Getenv("KV_BACKEND"); backend {
	case "", "bolt":
		path := os.Getenv("KV_BOLT_PATH")
		if path == "" {
			path = "chantha.db"
		}
		return kvstore.NewBoltStore(path)
	case "postgres":
		db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
		if err != nil {
			return nil, err
		}
		if err := db.Ping(); err != nil {
			return nil, err
		}
		return kvstore.NewPostgresStore(db)
	case "memory":
		return kvstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown KV_BACKEND %q", backend)
	}
}
