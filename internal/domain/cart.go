package domain

import "github.com/google/uuid"

// LineItem is one row in a cart: a specific product + size + colour with a
// quantity. ProductID identifies the product, not the line; the line identity
// is the (ProductID, Size, Color) triple.
type LineItem struct {
	ProductID     uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	Image         string    `json:"image"`
	Quantity      int       `json:"quantity"`
	Size          string    `json:"selected_size,omitempty"`
	Color         string    `json:"selected_color,omitempty"`
}

// SameVariant reports whether two lines refer to the same product variant,
// the merge key used when adding to a cart.
func (li LineItem) SameVariant(other LineItem) bool {
	return li.ProductID == other.ProductID && li.Size == other.Size && li.Color == other.Color
}

// Subtotal is the line contribution to the cart total.
func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}
