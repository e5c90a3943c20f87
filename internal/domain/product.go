package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a product in the storefront catalog. Section controls
// which storefront page/carousel displays the product; Category is its
// taxonomic type.
type Product struct {
	ID            uuid.UUID `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Category      string    `json:"category" db:"category"`
	Section       string    `json:"section" db:"section"`
	Price         float64   `json:"price" db:"price"`
	OriginalPrice *float64  `json:"original_price,omitempty" db:"original_price"`
	Description   string    `json:"description" db:"description"`
	ImageURL      string    `json:"image_url" db:"image_url"`
	Rating        float64   `json:"rating" db:"rating"`
	Reviews       int       `json:"reviews" db:"reviews"`
	IsNew         bool      `json:"is_new" db:"is_new"`
	IsBestSeller  bool      `json:"is_best_seller" db:"is_best_seller"`
	Colors        []string  `json:"colors" db:"colors"`
	Sizes         []string  `json:"sizes" db:"sizes"`
	ProductCode   string    `json:"product_code" db:"product_code"`
	BarcodeNo     string    `json:"barcode_no" db:"barcode_no"`
	Design        string    `json:"design" db:"design"`
	Status        string    `json:"status" db:"status"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ProductDraft is the caller-supplied payload for creating a product.
// The repository assigns the ID and both timestamps; any caller-supplied
// values for those are ignored.
type ProductDraft struct {
	Name          string   `json:"name" validate:"required"`
	Category      string   `json:"category" validate:"required"`
	Section       string   `json:"section"`
	Price         float64  `json:"price" validate:"gte=0"`
	OriginalPrice *float64 `json:"original_price,omitempty" validate:"omitempty,gte=0"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
	Rating        float64  `json:"rating" validate:"gte=0,lte=5"`
	Reviews       int      `json:"reviews" validate:"gte=0"`
	IsNew         bool     `json:"is_new"`
	IsBestSeller  bool     `json:"is_best_seller"`
	Colors        []string `json:"colors"`
	Sizes         []string `json:"sizes"`
	ProductCode   string   `json:"product_code"`
	BarcodeNo     string   `json:"barcode_no"`
	Design        string   `json:"design"`
	Status        string   `json:"status"`
}

// ProductPatch is a partial update. Nil fields are left untouched;
// updated_at is always refreshed by the repository.
type ProductPatch struct {
	Name          *string   `json:"name,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Section       *string   `json:"section,omitempty"`
	Price         *float64  `json:"price,omitempty" validate:"omitempty,gte=0"`
	OriginalPrice *float64  `json:"original_price,omitempty" validate:"omitempty,gte=0"`
	Description   *string   `json:"description,omitempty"`
	ImageURL      *string   `json:"image_url,omitempty"`
	Rating        *float64  `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
	Reviews       *int      `json:"reviews,omitempty" validate:"omitempty,gte=0"`
	IsNew         *bool     `json:"is_new,omitempty"`
	IsBestSeller  *bool     `json:"is_best_seller,omitempty"`
	Colors        *[]string `json:"colors,omitempty"`
	Sizes         *[]string `json:"sizes,omitempty"`
	ProductCode   *string   `json:"product_code,omitempty"`
	BarcodeNo     *string   `json:"barcode_no,omitempty"`
	Design        *string   `json:"design,omitempty"`
	Status        *string   `json:"status,omitempty"`
}

// Category represents a storefront category. This service treats the
// categories table as read-only.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
