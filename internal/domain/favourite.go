package domain

import (
	"time"

	"github.com/google/uuid"
)

// Favourite is a saved product snapshot. The snapshot is taken when the
// product is favourited and never refreshed, even if the product changes.
// AddedAt is set at insertion and immutable; it serializes as RFC 3339 and
// must come back as a timestamp, not a string.
type Favourite struct {
	ProductID     uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	Image         string    `json:"image"`
	Rating        float64   `json:"rating"`
	Reviews       int       `json:"reviews"`
	IsNew         bool      `json:"is_new"`
	IsBestSeller  bool      `json:"is_best_seller"`
	Colors        []string  `json:"colors,omitempty"`
	Sizes         []string  `json:"sizes,omitempty"`
	AddedAt       time.Time `json:"added_at"`
}
