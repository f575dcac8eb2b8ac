package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DishCategory enumerates the fixed set of menu categories
type DishCategory string

const (
	CategoryStarter DishCategory = "Starter"
	CategoryMain    DishCategory = "Main"
	CategoryDessert DishCategory = "Dessert"
	CategoryDrink   DishCategory = "Drink"
)

// Valid reports whether the category is one of the known values
func (c DishCategory) Valid() bool {
	switch c {
	case CategoryStarter, CategoryMain, CategoryDessert, CategoryDrink:
		return true
	}
	return false
}

// Dish represents a menu item created by the admin user
type Dish struct {
	ID             string       `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string       `gorm:"not null" json:"name"`
	Description    string       `gorm:"type:text" json:"description"`
	Price          float64      `gorm:"not null" json:"price"`
	Image          string       `json:"image"`
	Category       DishCategory `gorm:"default:'Main'" json:"category"`
	IsActive       *bool        `gorm:"default:true" json:"isActive"`
	AdditionalItem string       `gorm:"size:255;default:'meat'" json:"additionalItem"`
	UserID         string       `gorm:"type:uuid;not null" json:"userId"`
	User           User         `json:"-"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
