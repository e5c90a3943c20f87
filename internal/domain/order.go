package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. Payment is delegated to the external gateway, so an order
// stays pending until the gateway confirms it.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
)

// Order is a local order receipt recorded at checkout time. Items are the
// cart snapshot at that moment.
type Order struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	CustomerName string     `json:"customer_name" db:"customer_name"`
	Email        string     `json:"email" db:"email"`
	Phone        string     `json:"phone" db:"phone"`
	Address      string     `json:"address" db:"address"`
	City         string     `json:"city" db:"city"`
	PostalCode   string     `json:"postal_code" db:"postal_code"`
	Items        []LineItem `json:"items" db:"items"`
	Subtotal     float64    `json:"subtotal" db:"subtotal"`
	Discount     float64    `json:"discount" db:"discount"`
	Tax          float64    `json:"tax" db:"tax"`
	Total        float64    `json:"total" db:"total"`
	PaymentRef   string     `json:"payment_ref" db:"payment_ref"`
	Status       string     `json:"status" db:"status"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
