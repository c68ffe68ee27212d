package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID                 uint          `json:"id" gorm:"primaryKey"`
	FirstName          string        `json:"firstname" gorm:"column:firstname;size:255;not null"`
	LastName           string        `json:"lastname" gorm:"column:lastname;size:255;not null"`
	PhoneNumber        string        `json:"phonenumber" gorm:"column:phonenumber;size:32;not null;index"`
	Address            string        `json:"address" gorm:"size:255;not null"`
	Status             OrderStatus   `json:"status" gorm:"not null;default:1;index"`
	PaymentMethod      PaymentMethod `json:"payment_method" gorm:"not null;default:1;index"`
	Comment            string        `json:"comment" gorm:"size:200"`
	RegisteredAt       time.Time     `json:"registered_at" gorm:"not null;index"`
	CalledAt           *time.Time    `json:"called_at" gorm:"index"`
	DeliveredAt        *time.Time    `json:"delivered_at" gorm:"index"`
	ChosenRestaurantID *uint         `json:"chosen_restaurant_id" gorm:"index"`
	ChosenRestaurant   *Restaurant   `json:"chosen_restaurant,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Items              []OrderItem   `json:"items,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// TotalCost sums the snapshot prices of the loaded items.
func (o *Order) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Cost())
	}
	return total
}

type OrderStatus uint8

const (
	OrderNew OrderStatus = iota + 1
	OrderAccepted
	OrderHandedToCourier
	OrderDelivered
)

func (s OrderStatus) String() string {
	switch s {
	case OrderNew:
		return "new"
	case OrderAccepted:
		return "accepted"
	case OrderHandedToCourier:
		return "handed_to_courier"
	case OrderDelivered:
		return "delivered"
	}
	return "unknown"
}

type PaymentMethod uint8

const (
	PaymentCash PaymentMethod = iota + 1
	PaymentElectronic
)

func (m PaymentMethod) String() string {
	switch m {
	case PaymentCash:
		return "cash"
	case PaymentElectronic:
		return "electronic"
	}
	return "unknown"
}

// ParsePaymentMethod maps the API spelling to a PaymentMethod. An empty
// string means cash.
func ParsePaymentMethod(value string) (PaymentMethod, bool) {
	switch value {
	case "", "cash":
		return PaymentCash, true
	case "electronic":
		return PaymentElectronic, true
	}
	return 0, false
}
