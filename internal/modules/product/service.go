package product

import (
	"context"
	"time"
)

// Service defines marketplace listing business logic.
type Service interface {
	ListProducts(ctx context.Context) ([]*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)

	// CreateProduct stores a listing owned by sellerID. The caller supplies
	// the id; an existing id is silently overwritten (upsert).
	CreateProduct(ctx context.Context, p *Product, sellerID string) (*Product, error)

	// UpdateProduct shallow-merges the patch over the stored listing.
	// Only the owning seller may update.
	UpdateProduct(ctx context.Context, id string, patch *Patch, sellerID string) (*Product, error)

	// DeleteProduct removes a listing. Only the owning seller may delete.
	DeleteProduct(ctx context.Context, id string, sellerID string) error

	// SeedProduct stores a demo listing unless the id already exists.
	SeedProduct(ctx context.Context, p *Product) (*Product, bool, error)
}

type service struct{ repo Repository }

// NewService creates a new product service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListProducts(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) CreateProduct(ctx context.Context, p *Product, sellerID string) (*Product, error) {
	if p.ID == "" || p.Name == "" {
		return nil, ErrMissingRequired
	}
	if p.Availability != "" && !p.Availability.Valid() {
		return nil, ErrInvalidAvailability
	}

	p.SellerID = sellerID
	p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	p.UpdatedAt = ""
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, patch *Patch, sellerID string) (*Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.SellerID != sellerID {
		return nil, ErrNotOwner
	}
	if patch.Availability != nil && *patch.Availability != "" && !patch.Availability.Valid() {
		return nil, ErrInvalidAvailability
	}

	applyPatch(existing, patch)
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.Put(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *service) DeleteProduct(ctx context.Context, id string, sellerID string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing.SellerID != sellerID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) SeedProduct(ctx context.Context, p *Product) (*Product, bool, error) {
	if p.ID == "" || p.Name == "" {
		return nil, false, ErrMissingRequired
	}
	if existing, err := s.repo.GetByID(ctx, p.ID); err == nil {
		return existing, false, nil
	}
	p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func applyPatch(p *Product, patch *Patch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.MalayalamName != nil {
		p.MalayalamName = *patch.MalayalamName
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.CategoryDisplay != nil {
		p.CategoryDisplay = *patch.CategoryDisplay
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.PriceDisplay != nil {
		p.PriceDisplay = *patch.PriceDisplay
	}
	if patch.Rating != nil {
		p.Rating = *patch.Rating
	}
	if patch.Seller != nil {
		p.Seller = *patch.Seller
	}
	if patch.Availability != nil {
		p.Availability = *patch.Availability
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
}
