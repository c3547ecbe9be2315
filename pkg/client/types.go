package client

// Wire types mirroring the server's JSON documents. They are kept
// independent of the server packages so the client can be vendored into
// other frontends on its own.

// User is the signed-in identity.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Product is a marketplace listing.
type Product struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	MalayalamName   string  `json:"malayalamName,omitempty"`
	Category        string  `json:"category"`
	CategoryDisplay string  `json:"categoryDisplay,omitempty"`
	Price           float64 `json:"price"`
	PriceDisplay    string  `json:"priceDisplay,omitempty"`
	Rating          float64 `json:"rating,omitempty"`
	Seller          string  `json:"seller,omitempty"`
	SellerID        string  `json:"sellerId,omitempty"`
	Availability    string  `json:"availability,omitempty"`
	Image           string  `json:"image,omitempty"`
	Description     string  `json:"description,omitempty"`
	CreatedAt       string  `json:"createdAt,omitempty"`
	UpdatedAt       string  `json:"updatedAt,omitempty"`
}

// ProductPatch carries optional updates for a listing; nil fields are
// left untouched server-side.
type ProductPatch struct {
	Name            *string  `json:"name,omitempty"`
	MalayalamName   *string  `json:"malayalamName,omitempty"`
	Category        *string  `json:"category,omitempty"`
	CategoryDisplay *string  `json:"categoryDisplay,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	PriceDisplay    *string  `json:"priceDisplay,omitempty"`
	Rating          *float64 `json:"rating,omitempty"`
	Seller          *string  `json:"seller,omitempty"`
	Availability    *string  `json:"availability,omitempty"`
	Image           *string  `json:"image,omitempty"`
	Description     *string  `json:"description,omitempty"`
}

// CartItem is one cart line.
type CartItem struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	AddedAt   string `json:"addedAt,omitempty"`
}

// Cart is the server's cart document.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Wishlist is a set of product ids.
type Wishlist struct {
	Items []string `json:"items"`
}

// OrderItem is one purchased line.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// ShippingAddress is the checkout delivery destination.
type ShippingAddress struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
}

// Order is a placed order.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"createdAt"`
}

// OrderRequest is the checkout payload.
type OrderRequest struct {
	Items           []OrderItem     `json:"items"`
	TotalAmount     float64         `json:"totalAmount,omitempty"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
}
