package storefront

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/arjunks/chantha-backend/pkg/client"
)

// Filter narrows the marketplace listing. Zero values mean "no
// constraint"; all filtering happens client-side over the full product
// list, matching the server's contract of returning everything.
type Filter struct {
	Category     string
	Availability string
	MinPrice     float64
	MaxPrice     float64
	Query        string
}

// Catalog is the marketplace page's product list.
type Catalog struct {
	api *client.Client

	mu       sync.Mutex
	products []client.Product
}

func NewCatalog(api *client.Client) *Catalog {
	return &Catalog{api: api}
}

// Load refetches the full product list.
func (c *Catalog) Load(ctx context.Context) error {
	products, err := c.api.Products(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.products = products
	c.mu.Unlock()
	return nil
}

// Products returns a copy of the loaded list.
func (c *Catalog) Products() []client.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]client.Product(nil), c.products...)
}

// Categories lists the distinct categories present, sorted.
func (c *Catalog) Categories() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := make(map[string]bool)
	var cats []string
	for _, p := range c.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			cats = append(cats, p.Category)
		}
	}
	sort.Strings(cats)
	return cats
}

// Apply filters the loaded products. The text query matches the English
// name, the Malayalam name, the description and the seller display name,
// case-insensitively.
func (c *Catalog) Apply(f Filter) []client.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	query := strings.ToLower(strings.TrimSpace(f.Query))
	var out []client.Product
	for _, p := range c.products {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if f.Availability != "" && p.Availability != f.Availability {
			continue
		}
		if f.MinPrice > 0 && p.Price < f.MinPrice {
			continue
		}
		if f.MaxPrice > 0 && p.Price > f.MaxPrice {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p client.Product, query string) bool {
	for _, field := range []string{p.Name, p.MalayalamName, p.Description, p.Seller} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
