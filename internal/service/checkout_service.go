package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"ethnikart/internal/config"
	"ethnikart/internal/domain"
	"ethnikart/internal/repository"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cannot check out an empty cart")

// CheckoutRequest carries the customer contact and shipping details. Field
// shapes are validated before any write; see middleware validation tags.
type CheckoutRequest struct {
	CustomerName string `json:"customer_name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,phone"`
	Address      string `json:"address" validate:"required"`
	City         string `json:"city" validate:"required"`
	PostalCode   string `json:"postal_code" validate:"required,postalcode"`
}

// CheckoutResult is returned to the client so it can hand control to the
// external payment gateway. The order stays pending until the gateway
// confirms payment.
type CheckoutResult struct {
	Order            *domain.Order `json:"order"`
	PaymentPublicKey string        `json:"payment_public_key"`
}

// CheckoutService turns a cart snapshot into a local order receipt. Payment
// processing itself is delegated to the external gateway; when no gateway
// key is configured a mock reference is issued instead of failing.
type CheckoutService interface {
	Checkout(ctx context.Context, req CheckoutRequest, items []domain.LineItem) (*CheckoutResult, error)
}

type checkoutService struct {
	orders  repository.OrderRepository
	payment config.PaymentConfig
	taxRate float64
}

// NewCheckoutService creates a new instance of CheckoutService.
func NewCheckoutService(orders repository.OrderRepository, payment config.PaymentConfig, taxRate float64) CheckoutService {
	return &checkoutService{
		orders:  orders,
		payment: payment,
		taxRate: taxRate,
	}
}

// Checkout computes totals from the cart snapshot, records a pending order
// receipt, and returns the gateway key for the client to complete payment.
// No retries: a failure is terminal for this attempt.
func (s *checkoutService) Checkout(ctx context.Context, req CheckoutRequest, items []domain.LineItem) (*CheckoutResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	subtotal, discount := Totals(items)
	tax := roundMoney(subtotal * s.taxRate)

	order := &domain.Order{
		ID:           uuid.New(),
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		PostalCode:   req.PostalCode,
		Items:        items,
		Subtotal:     subtotal,
		Discount:     discount,
		Tax:          tax,
		Total:        roundMoney(subtotal + tax),
		PaymentRef:   s.paymentReference(),
		Status:       domain.OrderStatusPending,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to record order: %w", err)
	}

	return &CheckoutResult{
		Order:            order,
		PaymentPublicKey: s.payment.PublicKey,
	}, nil
}

// Totals computes the cart subtotal and the display-only discount: the sum
// of (original price - price) x quantity over discounted lines.
func Totals(items []domain.LineItem) (subtotal, discount float64) {
	for _, item := range items {
		subtotal += item.Subtotal()
		if item.OriginalPrice != nil && *item.OriginalPrice > item.Price {
			discount += (*item.OriginalPrice - item.Price) * float64(item.Quantity)
		}
	}
	return roundMoney(subtotal), roundMoney(discount)
}

func (s *checkoutService) paymentReference() string {
	if s.payment.PublicKey == "" {
		return "mock-" + uuid.New().String()
	}
	return uuid.New().String()
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
