package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus enumerates the order lifecycle states
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPreparing OrderStatus = "Preparing"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Valid reports whether the status is one of the known values
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is the immutable-once-created record of a purchase, derived from a
// cart at creation time. Price fields are copied from the source cart.
type Order struct {
	ID             string      `gorm:"type:uuid;primaryKey" json:"id"`
	Status         OrderStatus `gorm:"default:'Pending'" json:"status"`
	TotalPrice     float64     `gorm:"default:0" json:"totalPrice"`
	VatPercentage  float64     `gorm:"default:0" json:"vatPercentage"`
	DiscountAmount float64     `gorm:"default:0" json:"discountAmount"`
	UserID         string      `gorm:"type:uuid;not null" json:"userId"`
	User           User        `json:"-"`
	CartID         string      `gorm:"type:uuid;uniqueIndex" json:"cartId"`
	Cart           Cart        `json:"-"`
	OrderItems     []OrderItem `json:"orderItems"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
