// Command seeder populates a demo instance with the Kerala catalog and
// the fixed demo accounts. The target server must be running with
// DEMO_SEED=1 or every call below will 404.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/arjunks/chantha-backend/pkg/client"
)

var demoProducts = []client.Product{
	{
		ID: "prod-banana-chips-001", Name: "Banana Chips Premium Pack", MalayalamName: "ബനാന ചിപ്സ്",
		Category: "snacks", CategoryDisplay: "Snacks (സ്നാക്ക്സ്)",
		Price: 299, PriceDisplay: "₹299", Seller: "Kerala Snacks Co.", SellerID: "demo-seller-001",
		Availability: "in-stock",
		Image:        "https://images.unsplash.com/photo-1619028005538-db42565dd583?fm=jpg&q=80&w=1080",
	},
	{
		ID: "prod-halwa-002", Name: "Halwa Special", MalayalamName: "ഹൽവ",
		Category: "snacks", CategoryDisplay: "Snacks (സ്നാക്ക്സ്)",
		Price: 450, PriceDisplay: "₹450", Seller: "Sweet Traditions", SellerID: "demo-seller-002",
		Availability: "pre-order",
		Image:        "https://images.unsplash.com/photo-1723648722809-65f1e11e5060?fm=jpg&q=80&w=1080",
	},
	{
		ID: "prod-murukku-003", Name: "Murukku Homemade", MalayalamName: "മുറുക്ക്",
		Category: "snacks", CategoryDisplay: "Snacks (സ്നാക്ക്സ്)",
		Price: 199, PriceDisplay: "₹199", Seller: "Homemade Snacks Kerala", SellerID: "demo-seller-003",
		Availability: "in-stock",
		Image:        "https://images.unsplash.com/photo-1731329576495-3cf5f708c8fe?fm=jpg&q=80&w=1080",
	},
	{
		ID: "prod-payasam-004", Name: "Kerala Payasam Mix", MalayalamName: "പായസം മിക്സ്",
		Category: "snacks", CategoryDisplay: "Snacks (സ്നാക്ക്സ്)",
		Price: 350, PriceDisplay: "₹350", Seller: "Traditional Sweets", SellerID: "demo-seller-004",
		Availability: "in-stock",
		Image:        "https://images.unsplash.com/photo-1663136618135-d11b4dbd22c7?fm=jpg&q=80&w=1080",
	},
	{
		ID: "prod-mango-pickle-005", Name: "Mango Pickle Traditional", MalayalamName: "മാങ്ങ അച്ചാർ",
		Category: "pickles", CategoryDisplay: "Pickles (അച്ചാറുകൾ)",
		Price: 249, PriceDisplay: "₹249", Seller: "Homemade Delights", SellerID: "demo-seller-005",
		Availability: "in-stock",
		Image:        "https://images.unsplash.com/photo-1617854307432-13950e24ba07?fm=jpg&q=80&w=1080",
	},
	{
		ID: "prod-lemon-pickle-006", Name: "Lemon Pickle Spicy", MalayalamName: "നാരങ്ങ അച്ചാർ",
		Category: "pickles", CategoryDisplay: "Pickles (അച്ചാറുകൾ)",
		Price: 199, PriceDisplay: "₹199", Seller: "Homemade Pickles Kerala", SellerID: "demo-seller-006",
		Availability: "in-stock",
		Image:        "https://images.unsplash.com/photo-1583118289889-f9e5ee78c82a?fm=jpg&q=80&w=1080",
	},
	{
		ID: "prod-garlic-pickle-007", Name: "Garlic Pickle Traditional", MalayalamName: "വെളുത്തുള്ളി അച്ചാർ",
		Category: "pickles", CategoryDisplay: "Pickles (അച്ചാറുകൾ)",
		Price: 229, PriceDisplay: "₹229", Seller: "Authentic Pickles Co.", SellerID: "demo-seller-007",
		Availability: "in-stock",
		Image:        "https://images.unsplash.com/photo-1531170810185-442d4b10ebce?fm=jpg&q=80&w=1080",
	},
	{
		ID: "prod-coconut-oil-008", Name: "Coconut Oil Organic", MalayalamName: "വെളിച്ചെണ്ണ",
		Category: "beauty", CategoryDisplay: "Beauty (സൗന്ദര്യവർദ്ധക ഉൽപ്പന്നങ്ങൾ)",
		Price: 399, PriceDisplay: "₹399", Seller: "Natural Wellness", SellerID: "demo-seller-008",
		Availability: "in-stock",
		Image:        "https://images.unsplash.com/photo-1526947425960-945c6e72858f?fm=jpg&q=80&w=1080",
	},
	{
		ID: "prod-ayurvedic-soap-009", Name: "Ayurvedic Soap Natural", MalayalamName: "ആയുർവേദ സോപ്പ്",
		Category: "beauty", CategoryDisplay: "Beauty (സൗന്ദര്യവർദ്ധക ഉൽപ്പന്നങ്ങൾ)",
		Price: 149, PriceDisplay: "₹149", Seller: "Herbal Beauty Products", SellerID: "demo-seller-009",
		Availability: "in-stock",
		Image:        "https://images.unsplash.com/photo-1663108221456-1d905f3c6a9a?fm=jpg&q=80&w=1080",
	},
	{
		ID: "prod-hair-oil-010", Name: "Herbal Hair Oil", MalayalamName: "ഹെയർ ഓയിൽ",
		Category: "beauty", CategoryDisplay: "Beauty (സൗന്ദര്യവർദ്ധക ഉൽപ്പന്നങ്ങൾ)",
		Price: 299, PriceDisplay: "₹299", Seller: "Kerala Herbal Care", SellerID: "demo-seller-010",
		Availability: "in-stock",
		Image:        "https://images.unsplash.com/photo-1626006864202-946131e379dd?fm=jpg&q=80&w=1080",
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment as is")
	}

	baseURL := os.Getenv("CHANTHA_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	api := client.New(baseURL, client.NewMemorySession(),
		client.WithAnonKey(os.Getenv("CHANTHA_ANON_KEY")))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := api.Health(ctx); err != nil {
		log.Fatalf("server not reachable at %s: %v", baseURL, err)
	}

	if err := api.SeedDemoAccounts(ctx); err != nil {
		log.Fatalf("seeding demo accounts: %v", err)
	}
	log.Println("demo accounts seeded")

	for _, p := range demoProducts {
		if _, err := api.SeedProduct(ctx, p); err != nil {
			log.Fatalf("seeding %s: %v", p.ID, err)
		}
		log.Printf("seeded %s", p.ID)
	}
	log.Printf("done: %d products", len(demoProducts))
}
