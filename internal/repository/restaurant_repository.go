package repository

import (
	"context"

	"foodcart/internal/models"

	"gorm.io/gorm"
)

type RestaurantRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Restaurant, error)
	SupplyingAll(ctx context.Context, productIDs []uint) ([]models.Restaurant, error)
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := r.db.WithContext(ctx).First(&restaurant, id).Error
	if err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// SupplyingAll returns the restaurants whose menu has every one of the given
// products available. Duplicate ids are ignored; an empty list matches
// nothing.
func (r *restaurantRepository) SupplyingAll(ctx context.Context, productIDs []uint) ([]models.Restaurant, error) {
	ids := distinct(productIDs)
	if len(ids) == 0 {
		return []models.Restaurant{}, nil
	}

	var restaurants []models.Restaurant
	err := r.db.WithContext(ctx).
		Where("id IN (?)", r.db.Model(&models.RestaurantMenuItem{}).
			Select("restaurant_id").
			Where("product_id IN ? AND availability = ?", ids, true).
			Group("restaurant_id").
			Having("COUNT(DISTINCT product_id) = ?", len(ids))).
		Order("id").
		Find(&restaurants).Error
	return restaurants, err
}

func distinct(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
