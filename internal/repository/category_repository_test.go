package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCategory(t *testing.T, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := testDB.Exec(
		"INSERT INTO categories (id, name, description) VALUES ($1, $2, $3)",
		id, name, "curated collection",
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = testDB.Exec("DELETE FROM categories WHERE id = $1", id)
	})
	return id
}

func TestListCategoriesOrdersByName(t *testing.T) {
	seedCategory(t, "Sarees")
	seedCategory(t, "Dupattas")
	seedCategory(t, "Lehengas")

	categories, err := NewCategoryRepository(testDB).List(context.Background())
	require.NoError(t, err)

	require.Len(t, categories, 3)
	assert.Equal(t, "Dupattas", categories[0].Name)
	assert.Equal(t, "Lehengas", categories[1].Name)
	assert.Equal(t, "Sarees", categories[2].Name)
}

func TestFindCategoryByID(t *testing.T) {
	id := seedCategory(t, "Kurtas")

	repo := NewCategoryRepository(testDB)

	category, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Kurtas", category.Name)
	assert.False(t, category.CreatedAt.IsZero())

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
