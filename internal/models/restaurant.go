package models

type Restaurant struct {
	ID           uint                 `json:"id" gorm:"primaryKey"`
	Name         string               `json:"name" gorm:"size:50;not null"`
	Address      string               `json:"address" gorm:"size:100"`
	ContactPhone string               `json:"contact_phone" gorm:"size:50"`
	MenuItems    []RestaurantMenuItem `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// RestaurantMenuItem links a restaurant to a product it can cook. Only one
// row may exist per (restaurant, product) pair.
type RestaurantMenuItem struct {
	ID           uint        `json:"id" gorm:"primaryKey"`
	RestaurantID uint        `json:"restaurant_id" gorm:"not null;uniqueIndex:idx_menu_restaurant_product"`
	Restaurant   *Restaurant `json:"restaurant,omitempty"`
	ProductID    uint        `json:"product_id" gorm:"not null;uniqueIndex:idx_menu_restaurant_product"`
	Product      *Product    `json:"product,omitempty"`
	Availability bool        `json:"availability" gorm:"not null;index"`
}
