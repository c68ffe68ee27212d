package repository_test

import (
	"context"
	"testing"

	"foodcart/internal/models"
	"foodcart/internal/repository"
	"foodcart/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_GetAvailable(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProductRepository(db)

	category := &models.ProductCategory{Name: "Burgers"}
	require.NoError(t, db.Create(category).Error)

	first := testutil.CreateRestaurant(t, db, "First")
	second := testutil.CreateRestaurant(t, db, "Second")
	burger := testutil.CreateProduct(t, db, "Burger", "350.00")
	soup := testutil.CreateProduct(t, db, "Soup", "200.00")
	testutil.CreateProduct(t, db, "Ghost", "1.00")

	require.NoError(t, db.Model(burger).Update("category_id", category.ID).Error)
	testutil.Stock(t, db, first, burger, false)
	testutil.Stock(t, db, second, burger, true)
	testutil.Stock(t, db, first, soup, false)

	products, err := repo.GetAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)

	product := products[0]
	assert.Equal(t, burger.ID, product.ID)
	require.NotNil(t, product.Category)
	assert.Equal(t, "Burgers", product.Category.Name)
	require.Len(t, product.MenuItems, 1)
	require.NotNil(t, product.MenuItems[0].Restaurant)
	assert.Equal(t, "Second", product.MenuItems[0].Restaurant.Name)
}

func TestProductRepository_GetByIDs(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repository.NewProductRepository(db)
	a := testutil.CreateProduct(t, db, "A", "10.00")
	testutil.CreateProduct(t, db, "B", "5.00")

	products, err := repo.GetByIDs(context.Background(), []uint{a.ID, 999})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "A", products[0].Name)

	products, err = repo.GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, products)
}
