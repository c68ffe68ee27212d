package models

import "github.com/shopspring/decimal"

type ProductCategory struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:50;not null"`
}

type Product struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	Name          string               `json:"name" gorm:"size:50;not null"`
	CategoryID    *uint                `json:"category_id" gorm:"index"`
	Category      *ProductCategory     `json:"category,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Price         decimal.Decimal      `json:"price" gorm:"type:decimal(8,2);not null"`
	Image         string               `json:"image" gorm:"not null"`
	SpecialStatus bool                 `json:"special_status" gorm:"not null;default:false;index"`
	Description   string               `json:"description" gorm:"size:500"`
	MenuItems     []RestaurantMenuItem `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}
