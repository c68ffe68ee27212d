package repository

import (
	"context"

	"foodcart/internal/models"

	"gorm.io/gorm"
)

type OrderItemRepository interface {
	CreateBatch(ctx context.Context, items []models.OrderItem) error
	GetProductIDs(ctx context.Context, orderID uint) ([]uint, error)
	WithTx(tx *gorm.DB) OrderItemRepository
}

type orderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) WithTx(tx *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: tx}
}

func (r *orderItemRepository) CreateBatch(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Product").Create(&items).Error
}

// GetProductIDs returns the distinct products referenced by an order.
func (r *orderItemRepository) GetProductIDs(ctx context.Context, orderID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.OrderItem{}).
		Where("order_id = ?", orderID).
		Distinct().
		Order("product_id").
		Pluck("product_id", &ids).Error
	return ids, err
}
