package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartItem is a single dish line inside a cart.
// TotalPrice is always Quantity * PricePerItem and is recomputed on every mutation.
type CartItem struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	PricePerItem float64   `gorm:"not null" json:"pricePerItem"`
	TotalPrice   float64   `gorm:"not null" json:"totalPrice"`
	DishID       string    `gorm:"type:uuid;not null" json:"dishId"`
	Dish         Dish      `json:"dish"`
	CartID       string    `gorm:"type:uuid;not null" json:"cartId"`
	Cart         Cart      `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (ci *CartItem) BeforeCreate(tx *gorm.DB) error {
	if ci.ID == "" {
		ci.ID = uuid.NewString()
	}
	return nil
}
