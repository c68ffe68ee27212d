package migrations_test

import (
	"testing"
	"time"

	"foodcart/internal/migrations"
	"foodcart/internal/models"
	"foodcart/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDemoDataIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)

	require.NoError(t, migrations.SeedDemoData(db))
	require.NoError(t, migrations.SeedDemoData(db))

	var restaurants, products, menu, unavailable int64
	require.NoError(t, db.Model(&models.Restaurant{}).Count(&restaurants).Error)
	require.NoError(t, db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, db.Model(&models.RestaurantMenuItem{}).Count(&menu).Error)
	require.NoError(t, db.Model(&models.RestaurantMenuItem{}).Where("availability = ?", false).Count(&unavailable).Error)

	assert.EqualValues(t, 2, restaurants)
	assert.EqualValues(t, 3, products)
	assert.EqualValues(t, 6, menu)
	assert.EqualValues(t, 1, unavailable)
}

func TestRunMigrationsKeepsDataAndForeignKeys(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, migrations.SeedDemoData(db))

	var product models.Product
	require.NoError(t, db.Order("id").First(&product).Error)
	order := &models.Order{
		FirstName:     "Ivan",
		LastName:      "Petrov",
		PhoneNumber:   "+79161234567",
		Address:       "Moscow",
		Status:        models.OrderNew,
		PaymentMethod: models.PaymentCash,
		RegisteredAt:  time.Now(),
	}
	require.NoError(t, db.Omit("Items", "ChosenRestaurant").Create(order).Error)
	require.NoError(t, db.Omit("Product").Create(&models.OrderItem{OrderID: order.ID, ProductID: product.ID, Quantity: 1, Price: product.Price}).Error)

	require.NoError(t, migrations.RunMigrations(db, true))

	var menu, items int64
	require.NoError(t, db.Model(&models.RestaurantMenuItem{}).Count(&menu).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&items).Error)
	assert.EqualValues(t, 6, menu)
	assert.EqualValues(t, 1, items)

	var enabled int
	require.NoError(t, db.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}
