package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderItem mirrors the corresponding cart item at the moment of order creation
type OrderItem struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	PricePerItem float64   `gorm:"not null" json:"pricePerItem"`
	TotalPrice   float64   `gorm:"not null" json:"totalPrice"`
	DishID       string    `gorm:"type:uuid;not null" json:"dishId"`
	Dish         Dish      `json:"dish"`
	OrderID      string    `gorm:"type:uuid;not null" json:"orderId"`
	Order        Order     `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == "" {
		oi.ID = uuid.NewString()
	}
	return nil
}
