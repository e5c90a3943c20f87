package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ethnikart/internal/domain"

	"github.com/google/uuid"
)

var ErrProductNotFound = errors.New("product not found")

// FeaturedLimit caps the featured carousel query.
const FeaturedLimit = 8

// ProductRepository is the data gateway for the products table. Every listing
// returns newest-created first. Error messages are part of the contract: the
// transport layer renders them to clients verbatim.
type ProductRepository interface {
	ListAll(ctx context.Context) ([]*domain.Product, error)
	ListBySection(ctx context.Context, section string) ([]*domain.Product, error)
	ListByCategory(ctx context.Context, category string) ([]*domain.Product, error)
	ListFeatured(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Insert(ctx context.Context, draft *domain.ProductDraft) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, patch *domain.ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository.
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = `id, name, category, section, price, original_price, description,
	image_url, rating, reviews, is_new, is_best_seller, colors, sizes,
	product_code, barcode_no, design, status, created_at, updated_at`

// ListAll retrieves every product, newest first.
func (r *productRepository) ListAll(ctx context.Context) ([]*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY created_at DESC`, productColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListBySection retrieves products with an exact section match, newest first.
func (r *productRepository) ListBySection(ctx context.Context, section string) ([]*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE section = $1 ORDER BY created_at DESC`, productColumns)

	rows, err := r.db.QueryContext(ctx, query, section)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by section: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListByCategory retrieves products with an exact category match, newest first.
func (r *productRepository) ListByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE category = $1 ORDER BY created_at DESC`, productColumns)

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// ListFeatured retrieves new or best-selling products, newest first, capped
// at FeaturedLimit.
func (r *productRepository) ListFeatured(ctx context.Context) ([]*domain.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM products
		WHERE is_new = TRUE OR is_best_seller = TRUE
		ORDER BY created_at DESC
		LIMIT $1
	`, productColumns)

	rows, err := r.db.QueryContext(ctx, query, FeaturedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// FindByID retrieves a single product.
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// Insert creates a product from a draft. The repository assigns the ID and
// both timestamps; caller-supplied values for those are ignored.
func (r *productRepository) Insert(ctx context.Context, draft *domain.ProductDraft) (*domain.Product, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		ID:            uuid.New(),
		Name:          draft.Name,
		Category:      draft.Category,
		Section:       draft.Section,
		Price:         draft.Price,
		OriginalPrice: draft.OriginalPrice,
		Description:   draft.Description,
		ImageURL:      draft.ImageURL,
		Rating:        draft.Rating,
		Reviews:       draft.Reviews,
		IsNew:         draft.IsNew,
		IsBestSeller:  draft.IsBestSeller,
		Colors:        draft.Colors,
		Sizes:         draft.Sizes,
		ProductCode:   draft.ProductCode,
		BarcodeNo:     draft.BarcodeNo,
		Design:        draft.Design,
		Status:        draft.Status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	colors, err := json.Marshal(product.Colors)
	if err != nil {
		return nil, fmt.Errorf("failed to encode colors: %w", err)
	}
	sizes, err := json.Marshal(product.Sizes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sizes: %w", err)
	}

	query := `
		INSERT INTO products (id, name, category, section, price, original_price,
			description, image_url, rating, reviews, is_new, is_best_seller,
			colors, sizes, product_code, barcode_no, design, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Name,
		product.Category,
		product.Section,
		product.Price,
		product.OriginalPrice,
		product.Description,
		product.ImageURL,
		product.Rating,
		product.Reviews,
		product.IsNew,
		product.IsBestSeller,
		colors,
		sizes,
		product.ProductCode,
		product.BarcodeNo,
		product.Design,
		product.Status,
		product.CreatedAt,
		product.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// Update applies a partial update and refreshes updated_at. Returns
// ErrProductNotFound when no row matches.
func (r *productRepository) Update(ctx context.Context, id uuid.UUID, patch *domain.ProductPatch) (*domain.Product, error) {
	set := "updated_at = $2"
	args := []interface{}{id, time.Now().UTC()}
	argIndex := 3

	add := func(column string, value interface{}) {
		set += fmt.Sprintf(", %s = $%d", column, argIndex)
		args = append(args, value)
		argIndex++
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Section != nil {
		add("section", *patch.Section)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.OriginalPrice != nil {
		add("original_price", *patch.OriginalPrice)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.ImageURL != nil {
		add("image_url", *patch.ImageURL)
	}
	if patch.Rating != nil {
		add("rating", *patch.Rating)
	}
	if patch.Reviews != nil {
		add("reviews", *patch.Reviews)
	}
	if patch.IsNew != nil {
		add("is_new", *patch.IsNew)
	}
	if patch.IsBestSeller != nil {
		add("is_best_seller", *patch.IsBestSeller)
	}
	if patch.Colors != nil {
		colors, err := json.Marshal(*patch.Colors)
		if err != nil {
			return nil, fmt.Errorf("failed to encode colors: %w", err)
		}
		add("colors", colors)
	}
	if patch.Sizes != nil {
		sizes, err := json.Marshal(*patch.Sizes)
		if err != nil {
			return nil, fmt.Errorf("failed to encode sizes: %w", err)
		}
		add("sizes", sizes)
	}
	if patch.ProductCode != nil {
		add("product_code", *patch.ProductCode)
	}
	if patch.BarcodeNo != nil {
		add("barcode_no", *patch.BarcodeNo)
	}
	if patch.Design != nil {
		add("design", *patch.Design)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}

	query := fmt.Sprintf("UPDATE products SET %s WHERE id = $1", set)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, ErrProductNotFound
	}

	return r.FindByID(ctx, id)
}

// Delete removes a product. Returns ErrProductNotFound when no row matches.
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var colors, sizes []byte

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.Section,
		&product.Price,
		&product.OriginalPrice,
		&product.Description,
		&product.ImageURL,
		&product.Rating,
		&product.Reviews,
		&product.IsNew,
		&product.IsBestSeller,
		&colors,
		&sizes,
		&product.ProductCode,
		&product.BarcodeNo,
		&product.Design,
		&product.Status,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(colors) > 0 {
		if err := json.Unmarshal(colors, &product.Colors); err != nil {
			return nil, fmt.Errorf("failed to decode colors: %w", err)
		}
	}
	if len(sizes) > 0 {
		if err := json.Unmarshal(sizes, &product.Sizes); err != nil {
			return nil, fmt.Errorf("failed to decode sizes: %w", err)
		}
	}

	return product, nil
}

func scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}
