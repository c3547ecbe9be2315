package order

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

// Service defines order business logic.
type Service interface {
	// CreateOrder validates the payload, reprices every line from the
	// stored listings, persists the order and clears the buyer's cart.
	CreateOrder(ctx context.Context, userID string, req CreateRequest) (*Order, error)

	// ListUserOrders returns all orders placed by the user.
	ListUserOrders(ctx context.Context, userID string) ([]*Order, error)

	// GetOrder returns one order; only its owner may read it.
	GetOrder(ctx context.Context, id, userID string) (*Order, error)
}

type service struct {
	repo Repository
	node *snowflake.Node
}

// NewService creates a new order service.
func NewService(repo Repository) (Service, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, err
	}
	return &service{repo: repo, node: node}, nil
}

func (s *service) CreateOrder(ctx context.Context, userID string, req CreateRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if err := validateAddress(req.ShippingAddress); err != nil {
		return nil, err
	}

	payment := req.PaymentMethod
	if payment == "" {
		payment = PaymentCashOnDelivery
	}
	if payment != PaymentCashOnDelivery {
		return nil, ErrBadPayment
	}

	// Reprice every line from the stored listings; the client-submitted
	// total is checked, never trusted.
	items := make([]Item, 0, len(req.Items))
	var total float64
	for _, it := range req.Items {
		if it.ProductID == "" {
			return nil, fmt.Errorf("%w: item is missing a product id", ErrEmptyOrder)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be > 0 for product %s", it.ProductID)
		}
		price, err := s.repo.GetProductPrice(ctx, it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s is no longer available", it.ProductID)
		}
		items = append(items, Item{ProductID: it.ProductID, Quantity: it.Quantity, Price: price})
		total += price * float64(it.Quantity)
	}
	total = round2(total)

	if req.TotalAmount != 0 && math.Abs(req.TotalAmount-total) > 0.009 {
		return nil, ErrTotalMismatch
	}

	o := &Order{
		ID:              fmt.Sprintf("order-%s", s.node.Generate()),
		UserID:          userID,
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   payment,
		Status:          StatusPending,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	if err := s.repo.ClearCart(ctx, userID); err != nil {
		// The order is already placed; a stale cart is recoverable, a
		// lost order is not.
		zap.S().Errorw("order placed but cart clear failed", "orderId", o.ID, "userId", userID, "error", err)
	}
	return o, nil
}

func (s *service) ListUserOrders(ctx context.Context, userID string) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) GetOrder(ctx context.Context, id, userID string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrNotOwner
	}
	return o, nil
}

func validateAddress(a ShippingAddress) error {
	var missing []string
	for field, value := range map[string]string{
		"fullName":     a.FullName,
		"email":        a.Email,
		"phone":        a.Phone,
		"addressLine1": a.AddressLine1,
		"city":         a.City,
		"state":        a.State,
		"postalCode":   a.PostalCode,
	} {
		if value == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrMissingAddress, strings.Join(missing, ", "))
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
