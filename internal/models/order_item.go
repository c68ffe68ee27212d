package models

import "github.com/shopspring/decimal"

// OrderItem keeps the unit price the customer saw when ordering, independent
// of later edits to Product.Price.
type OrderItem struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	OrderID   uint            `json:"order_id" gorm:"not null;index"`
	ProductID uint            `json:"product_id" gorm:"not null;index"`
	Product   *Product        `json:"product,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Quantity  int             `json:"quantity" gorm:"not null;check:quantity > 0"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(8,2);not null"`
}

func (i OrderItem) Cost() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
