package migrations

import (
	"fmt"

	"foodcart/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Models lists every table in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.Restaurant{},
		&models.ProductCategory{},
		&models.Product{},
		&models.RestaurantMenuItem{},
		&models.Order{},
		&models.OrderItem{},
	}
}

// RunMigrations brings the schema up to date and optionally loads the demo
// catalog into an empty database.
func RunMigrations(db *gorm.DB, seed bool) error {
	logrus.Info("Running database migrations...")

	if err := autoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if seed {
		if err := SeedDemoData(db); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

// autoMigrate suspends sqlite foreign keys while the schema changes: the
// sqlite migrator rebuilds tables to alter columns, and dropping a parent
// table with enforcement on would cascade into its children.
func autoMigrate(db *gorm.DB) error {
	if db.Dialector.Name() != "sqlite" {
		return db.AutoMigrate(Models()...)
	}

	if err := db.Exec("PRAGMA foreign_keys = OFF").Error; err != nil {
		return err
	}
	migrateErr := db.AutoMigrate(Models()...)
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return err
	}
	return migrateErr
}

// SeedDemoData creates a small catalog unless restaurants already exist.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Restaurant{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logrus.WithField("restaurants", count).Info("Catalog already present, skipping demo data")
		return nil
	}

	logrus.Info("Creating demo catalog...")

	return db.Transaction(func(tx *gorm.DB) error {
		burgers := models.ProductCategory{Name: "Burgers"}
		desserts := models.ProductCategory{Name: "Desserts"}
		if err := tx.Create(&[]*models.ProductCategory{&burgers, &desserts}).Error; err != nil {
			return err
		}

		restaurants := []*models.Restaurant{
			{Name: "Star Burger Arbat", Address: "Moscow, Novy Arbat 15", ContactPhone: "+74951234567"},
			{Name: "Star Burger Tverskaya", Address: "Moscow, Tverskaya 7", ContactPhone: "+74957654321"},
		}
		if err := tx.Create(&restaurants).Error; err != nil {
			return err
		}

		products := []*models.Product{
			{Name: "Cheeseburger", CategoryID: &burgers.ID, Price: decimal.RequireFromString("350.00"), Image: "cheeseburger.jpg", SpecialStatus: true, Description: "Beef patty, cheddar, pickles"},
			{Name: "Double burger", CategoryID: &burgers.ID, Price: decimal.RequireFromString("490.00"), Image: "double.jpg", Description: "Two patties, double cheese"},
			{Name: "Cheesecake", CategoryID: &desserts.ID, Price: decimal.RequireFromString("290.00"), Image: "cheesecake.jpg", Description: "New York style"},
		}
		if err := tx.Create(&products).Error; err != nil {
			return err
		}

		var menu []models.RestaurantMenuItem
		for i, restaurant := range restaurants {
			for j, product := range products {
				menu = append(menu, models.RestaurantMenuItem{
					RestaurantID: restaurant.ID,
					ProductID:    product.ID,
					// the second restaurant has no desserts today
					Availability: !(i == 1 && j == 2),
				})
			}
		}
		return tx.Create(&menu).Error
	})
}
