package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CartStatus enumerates the cart lifecycle states
type CartStatus string

const (
	CartStatusActive    CartStatus = "Active"
	CartStatusPending   CartStatus = "Pending"
	CartStatusConverted CartStatus = "Converted"
	CartStatusCompleted CartStatus = "Completed"
)

// cartTransitions lists the legal moves between cart states.
// Converted and Completed are terminal.
var cartTransitions = map[CartStatus][]CartStatus{
	CartStatusActive:  {CartStatusPending, CartStatusCompleted, CartStatusConverted},
	CartStatusPending: {CartStatusConverted},
}

// Terminal reports whether no further transition is legal out of the state
func (s CartStatus) Terminal() bool {
	return len(cartTransitions[s]) == 0
}

// Cart is a user's in-progress collection of dishes prior to order placement
type Cart struct {
	ID             string     `gorm:"type:uuid;primaryKey" json:"id"`
	Status         CartStatus `gorm:"default:'Active'" json:"status"`
	DiscountAmount float64    `gorm:"default:0" json:"discountAmount"`
	VatPercentage  float64    `gorm:"default:0" json:"vatPercentage"`
	TotalPrice     float64    `gorm:"default:0" json:"totalPrice"`
	UserID         string     `gorm:"type:uuid;not null" json:"userId"`
	User           User       `json:"-"`
	CartItems      []CartItem `json:"cartItems"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// Transition moves the cart to the next status, rejecting illegal moves
func (c *Cart) Transition(next CartStatus) error {
	for _, allowed := range cartTransitions[c.Status] {
		if next == allowed {
			c.Status = next
			return nil
		}
	}
	return fmt.Errorf("illegal cart transition from %s to %s", c.Status, next)
}
