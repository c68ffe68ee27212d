package repository

import (
	"context"

	"foodcart/internal/models"

	"gorm.io/gorm"
)

type ProductRepository interface {
	GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	GetAvailable(ctx context.Context) ([]models.Product, error)
	WithTx(tx *gorm.DB) ProductRepository
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) WithTx(tx *gorm.DB) ProductRepository {
	return &productRepository{db: tx}
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

// GetAvailable returns products stocked by at least one restaurant, with the
// category and the available menu rows (restaurant preloaded, lowest
// restaurant id first).
func (r *productRepository) GetAvailable(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
			return db.Where("availability = ?", true).Order("restaurant_id")
		}).
		Preload("MenuItems.Restaurant").
		Where("id IN (?)", r.db.Model(&models.RestaurantMenuItem{}).
			Select("product_id").
			Where("availability = ?", true)).
		Order("id").
		Find(&products).Error
	return products, err
}
