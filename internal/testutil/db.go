// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"testing"

	"foodcart/internal/database"
	"foodcart/internal/migrations"
	"foodcart/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated sqlite database that is closed with the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Initialize("sqlite", ":memory:", "silent")
	require.NoError(t, err)
	require.NoError(t, migrations.RunMigrations(db, false))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func CreateRestaurant(t *testing.T, db *gorm.DB, name string) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{Name: name, Address: name + " street 1"}
	require.NoError(t, db.Create(restaurant).Error)
	return restaurant
}

func CreateProduct(t *testing.T, db *gorm.DB, name, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:  name,
		Price: decimal.RequireFromString(price),
		Image: name + ".jpg",
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func Stock(t *testing.T, db *gorm.DB, restaurant *models.Restaurant, product *models.Product, available bool) {
	t.Helper()
	item := &models.RestaurantMenuItem{
		RestaurantID: restaurant.ID,
		ProductID:    product.ID,
		Availability: available,
	}
	require.NoError(t, db.Create(item).Error)
}
