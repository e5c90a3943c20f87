package repository

import (
	"context"
	"database/sql"
	"log"
	"testing"
	"time"

	"ethnikart/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var testDB *sql.DB

func setupTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, error) {
	var (
		dbName = "testdb"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:15",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, err
	}

	connStr := "postgres://" + dbUser + ":" + dbPwd + "@" + dbHost + ":" + dbPort.Port() + "/" + dbName + "?sslmode=disable"
	testDB, err = sql.Open("pgx", connStr)
	if err != nil {
		return dbContainer.Terminate, err
	}

	_, err = testDB.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(100) NOT NULL,
			section VARCHAR(100) NOT NULL DEFAULT '',
			price DECIMAL(10, 2) NOT NULL CHECK (price >= 0),
			original_price DECIMAL(10, 2),
			description TEXT NOT NULL DEFAULT '',
			image_url VARCHAR(500) NOT NULL DEFAULT '',
			rating DECIMAL(3, 2) NOT NULL DEFAULT 0,
			reviews INTEGER NOT NULL DEFAULT 0,
			is_new BOOLEAN NOT NULL DEFAULT FALSE,
			is_best_seller BOOLEAN NOT NULL DEFAULT FALSE,
			colors JSONB NOT NULL DEFAULT '[]',
			sizes JSONB NOT NULL DEFAULT '[]',
			product_code VARCHAR(100) NOT NULL DEFAULT '',
			barcode_no VARCHAR(100) NOT NULL DEFAULT '',
			design VARCHAR(100) NOT NULL DEFAULT '',
			status VARCHAR(50) NOT NULL DEFAULT 'active',
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return dbContainer.Terminate, err
	}

	_, err = testDB.Exec(`
		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name VARCHAR(100) UNIQUE NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return dbContainer.Terminate, err
	}

	_, err = testDB.Exec(`
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			customer_name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(50) NOT NULL,
			address TEXT NOT NULL,
			city VARCHAR(100) NOT NULL,
			postal_code VARCHAR(20) NOT NULL,
			items JSONB NOT NULL,
			subtotal DECIMAL(12, 2) NOT NULL,
			discount DECIMAL(12, 2) NOT NULL DEFAULT 0,
			tax DECIMAL(12, 2) NOT NULL DEFAULT 0,
			total DECIMAL(12, 2) NOT NULL,
			payment_ref VARCHAR(100) NOT NULL DEFAULT '',
			status VARCHAR(50) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return dbContainer.Terminate, err
	}

	return dbContainer.Terminate, nil
}

func TestMain(m *testing.M) {
	teardown, err := setupTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Fatalf("could not teardown postgres container: %v", err)
		}
	}
}

func clearProducts(t *testing.T) {
	t.Helper()
	_, err := testDB.Exec("DELETE FROM products")
	require.NoError(t, err)
}

func sareeDraft(name string) *domain.ProductDraft {
	original := 2500.0
	return &domain.ProductDraft{
		Name:          name,
		Category:      "Silk Saree",
		Section:       "saree",
		Price:         1999,
		OriginalPrice: &original,
		Description:   "Handwoven silk saree with zari border",
		ImageURL:      "https://example.com/saree.jpg",
		Rating:        4.5,
		Reviews:       12,
		Colors:        []string{"Red", "Green"},
		Sizes:         []string{"Free Size"},
		ProductCode:   "SR-" + name,
		Status:        "active",
	}
}

func TestInsertAssignsIdentityAndTimestamps(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	created, err := repo.Insert(ctx, sareeDraft("Banarasi"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Banarasi", found.Name)
	assert.Equal(t, []string{"Red", "Green"}, found.Colors)
	assert.Equal(t, []string{"Free Size"}, found.Sizes)
	require.NotNil(t, found.OriginalPrice)
	assert.Equal(t, 2500.0, *found.OriginalPrice)
}

func TestListBySectionReturnsOnlyMatchesNewestFirst(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	names := []string{"Kanjivaram", "Banarasi", "Chanderi"}
	for _, name := range names {
		_, err := repo.Insert(ctx, sareeDraft(name))
		require.NoError(t, err)
		// spread created_at so the expected order is unambiguous
		time.Sleep(5 * time.Millisecond)
	}

	lehenga := sareeDraft("Bridal Lehenga")
	lehenga.Section = "lehenga"
	_, err := repo.Insert(ctx, lehenga)
	require.NoError(t, err)

	kurta := sareeDraft("Anarkali Kurta")
	kurta.Section = "kurta"
	_, err = repo.Insert(ctx, kurta)
	require.NoError(t, err)

	products, err := repo.ListBySection(ctx, "saree")
	require.NoError(t, err)

	require.Len(t, products, 3)
	assert.Equal(t, "Chanderi", products[0].Name)
	assert.Equal(t, "Banarasi", products[1].Name)
	assert.Equal(t, "Kanjivaram", products[2].Name)
	for _, p := range products {
		assert.Equal(t, "saree", p.Section)
	}
}

func TestListFeaturedCapsAndFilters(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	for i := 0; i < FeaturedLimit+2; i++ {
		draft := sareeDraft("Featured " + uuid.New().String())
		draft.IsNew = i%2 == 0
		draft.IsBestSeller = i%2 == 1
		_, err := repo.Insert(ctx, draft)
		require.NoError(t, err)
	}

	plain := sareeDraft("Plain Cotton")
	_, err := repo.Insert(ctx, plain)
	require.NoError(t, err)

	products, err := repo.ListFeatured(ctx)
	require.NoError(t, err)

	assert.Len(t, products, FeaturedLimit)
	for _, p := range products {
		assert.True(t, p.IsNew || p.IsBestSeller, "product %s is not featured", p.Name)
	}
}

func TestUpdateAppliesPatchAndRefreshesUpdatedAt(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	created, err := repo.Insert(ctx, sareeDraft("Tussar"))
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	newPrice := 1499.0
	newColors := []string{"Ivory"}
	updated, err := repo.Update(ctx, created.ID, &domain.ProductPatch{
		Price:  &newPrice,
		Colors: &newColors,
	})
	require.NoError(t, err)

	assert.Equal(t, 1499.0, updated.Price)
	assert.Equal(t, []string{"Ivory"}, updated.Colors)
	assert.Equal(t, "Tussar", updated.Name)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	// postgres truncates to microseconds, so compare loosely
	assert.WithinDuration(t, created.CreatedAt, updated.CreatedAt, time.Millisecond)
}

func TestUpdateMissingProduct(t *testing.T) {
	repo := NewProductRepository(testDB)

	name := "Ghost"
	_, err := repo.Update(context.Background(), uuid.New(), &domain.ProductPatch{Name: &name})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteRemovesProduct(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	created, err := repo.Insert(ctx, sareeDraft("Patola"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrProductNotFound)
}

func TestProperty_InsertPreservesDraftAttributes(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	properties := gopter.NewProperties(nil)

	properties.Property("inserting and retrieving a product preserves draft attributes", prop.ForAll(
		func(name string, category string, section string, price float64, rating float64, reviews int) bool {
			draft := &domain.ProductDraft{
				Name:     name,
				Category: category,
				Section:  section,
				Price:    price,
				Rating:   rating,
				Reviews:  reviews,
				Colors:   []string{"Red"},
				Sizes:    []string{"M", "L"},
				Status:   "active",
			}

			created, err := repo.Insert(ctx, draft)
			if err != nil {
				t.Logf("FAIL: Failed to insert product: %v", err)
				return false
			}

			retrieved, err := repo.FindByID(ctx, created.ID)
			if err != nil {
				t.Logf("FAIL: Failed to retrieve product: %v", err)
				return false
			}

			if retrieved.Name != name || retrieved.Category != category || retrieved.Section != section {
				t.Logf("FAIL: Attribute mismatch for product %s", created.ID)
				return false
			}

			// DECIMAL(10,2) rounds to two places
			if retrieved.Price < price-0.01 || retrieved.Price > price+0.01 {
				t.Logf("FAIL: Price mismatch. Expected %f, got %f", price, retrieved.Price)
				return false
			}

			if retrieved.Reviews != reviews {
				t.Logf("FAIL: Reviews mismatch. Expected %d, got %d", reviews, retrieved.Reviews)
				return false
			}

			if len(retrieved.Colors) != 1 || len(retrieved.Sizes) != 2 {
				t.Logf("FAIL: Variant lists not preserved for product %s", created.ID)
				return false
			}

			_ = repo.Delete(ctx, created.ID)
			return true
		},
		gen.RegexMatch(`[A-Za-z0-9 ]{3,50}`),
		gen.RegexMatch(`[A-Za-z ]{3,30}`),
		gen.RegexMatch(`[a-z]{3,15}`),
		gen.Float64Range(0.01, 9999.99),
		gen.Float64Range(0, 5),
		gen.IntRange(0, 10000),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
