package product

import "errors"

// Availability is the closed set of stocking states a listing can be in.
type Availability string

const (
	InStock     Availability = "in-stock"
	PreOrder    Availability = "pre-order"
	MadeToOrder Availability = "made-to-order"
)

// Valid reports whether a is one of the allowed availability values.
func (a Availability) Valid() bool {
	switch a {
	case InStock, PreOrder, MadeToOrder:
		return true
	}
	return false
}

// Product is a marketplace listing stored under product:{id}. Names carry
// the Malayalam form alongside the English one for the bilingual storefront.
type Product struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	MalayalamName   string       `json:"malayalamName,omitempty"`
	Category        string       `json:"category"`
	CategoryDisplay string       `json:"categoryDisplay,omitempty"`
	Price           float64      `json:"price"`
	PriceDisplay    string       `json:"priceDisplay,omitempty"`
	Rating          float64      `json:"rating,omitempty"`
	Seller          string       `json:"seller,omitempty"`
	SellerID        string       `json:"sellerId,omitempty"`
	Availability    Availability `json:"availability,omitempty"`
	Image           string       `json:"image,omitempty"`
	Description     string       `json:"description,omitempty"`
	CreatedAt       string       `json:"createdAt,omitempty"`
	UpdatedAt       string       `json:"updatedAt,omitempty"`
}

// Patch carries the fields a seller may change on an existing listing.
// Nil pointers mean "leave as is"; id and sellerId are never patchable.
type Patch struct {
	Name            *string       `json:"name"`
	MalayalamName   *string       `json:"malayalamName"`
	Category        *string       `json:"category"`
	CategoryDisplay *string       `json:"categoryDisplay"`
	Price           *float64      `json:"price"`
	PriceDisplay    *string       `json:"priceDisplay"`
	Rating          *float64      `json:"rating"`
	Seller          *string       `json:"seller"`
	Availability    *Availability `json:"availability"`
	Image           *string       `json:"image"`
	Description     *string       `json:"description"`
}

var (
	ErrNotFound            = errors.New("product not found")
	ErrNotOwner            = errors.New("not authorized to modify this product")
	ErrMissingRequired     = errors.New("product id and name are required")
	ErrInvalidAvailability = errors.New("availability must be one of in-stock, pre-order, made-to-order")
)
