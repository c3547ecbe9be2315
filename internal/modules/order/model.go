package order

import "errors"

// Status is the lifecycle state of an order. Orders are immutable after
// creation in the current system, so every order stays pending, but the
// enum is closed so later transitions have a fixed vocabulary.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// PaymentCashOnDelivery is the only supported payment method.
const PaymentCashOnDelivery = "cash-on-delivery"

// Item is one purchased line. Price is the authoritative unit price read
// from the product listing at order time, not the client's claim.
type Item struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// ShippingAddress is the delivery destination captured at checkout.
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

// Order is stored under order:{id} and indexed under
// order-user:{userId}:{id} for per-user listing.
type Order struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Items           []Item          `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Status          Status          `json:"status"`
	CreatedAt       string          `json:"createdAt"`
}

// CreateRequest is the checkout payload. TotalAmount is optional; when
// present it must match the server-computed total.
type CreateRequest struct {
	Items           []Item          `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
}

var (
	ErrNotFound       = errors.New("order not found")
	ErrNotOwner       = errors.New("not authorized to view this order")
	ErrEmptyOrder     = errors.New("order must contain at least one item")
	ErrTotalMismatch  = errors.New("submitted total does not match product prices")
	ErrBadPayment     = errors.New("payment method must be cash-on-delivery")
	ErrMissingAddress = errors.New("shipping address is incomplete")
)
