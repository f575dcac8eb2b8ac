package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jmfernandez/gin-food-api/internal/models"
	"github.com/jmfernandez/gin-food-api/internal/pricing"
)

// CartService manages a user's active cart and its items. Item mutations are
// scoped to carts in Active status: a cart that is absent or no longer Active
// surfaces as not-found either way.
type CartService interface {
	// CreateCart opens a new Active cart for the user; at most one Active
	// cart may exist per user at a time
	CreateCart(userID string) (*models.Cart, error)
	// GetActiveCart returns the user's Active cart with items and dishes
	GetActiveCart(userID string) (*models.Cart, error)
	// AddItem adds a dish to the cart, merging quantity into an existing
	// line for the same dish. The returned bool is true when a new line was
	// created.
	AddItem(cartID, dishID string, quantity int) (*models.CartItem, bool, error)
	// UpdateItemQuantity replaces the quantity of a cart line
	UpdateItemQuantity(cartID, itemID string, quantity int) (*models.CartItem, error)
	// RemoveItem deletes a cart line
	RemoveItem(cartID, itemID string) error
	// Checkout computes the cart total and marks the cart Completed
	Checkout(userID string) (*models.Cart, error)
}

type cartService struct {
	db            *gorm.DB
	clampNegative bool
}

// NewCartService creates a new instance of CartService. clampNegative
// controls whether a discount above the subtotal floors the total at zero.
func NewCartService(db *gorm.DB, clampNegative bool) CartService {
	return &cartService{db: db, clampNegative: clampNegative}
}

func (s *cartService) CreateCart(userID string) (*models.Cart, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}

	// One Active cart per user, enforced by lookup only (no unique
	// constraint); concurrent creations can race
	var existing models.Cart
	err := s.db.Where("user_id = ? AND status = ?", userID, models.CartStatusActive).First(&existing).Error
	if err == nil {
		return nil, models.ErrCartAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart := &models.Cart{
		UserID: userID,
		Status: models.CartStatusActive,
	}
	if err := s.db.Create(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) GetActiveCart(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Preload("CartItems.Dish").Preload("CartItems").
		Where("user_id = ? AND status = ?", userID, models.CartStatusActive).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

// findActiveCartByID scopes the lookup to (cart id, status = Active)
func (s *cartService) findActiveCartByID(cartID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.Preload("CartItems.Dish").Preload("CartItems").
		Where("id = ? AND status = ?", cartID, models.CartStatusActive).
		First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCartNotFound
		}
		return nil, err
	}
	return &cart, nil
}

func (s *cartService) AddItem(cartID, dishID string, quantity int) (*models.CartItem, bool, error) {
	cart, err := s.findActiveCartByID(cartID)
	if err != nil {
		return nil, false, err
	}

	var dish models.Dish
	if err := s.db.Where("id = ?", dishID).First(&dish).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, models.ErrDishNotFound
		}
		return nil, false, err
	}

	// Merge into an existing line for the same dish
	for i := range cart.CartItems {
		item := &cart.CartItems[i]
		if item.DishID == dishID {
			item.Quantity += quantity
			item.TotalPrice = float64(item.Quantity) * dish.Price
			if err := s.db.Save(item).Error; err != nil {
				return nil, false, err
			}
			return item, false, nil
		}
	}

	item := &models.CartItem{
		CartID:       cart.ID,
		DishID:       dish.ID,
		Quantity:     quantity,
		PricePerItem: dish.Price,
		TotalPrice:   float64(quantity) * dish.Price,
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, false, err
	}
	return item, true, nil
}

func (s *cartService) UpdateItemQuantity(cartID, itemID string, quantity int) (*models.CartItem, error) {
	if _, err := s.findActiveCartByID(cartID); err != nil {
		return nil, err
	}

	var item models.CartItem
	err := s.db.Preload("Dish").
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCartItemNotFound
		}
		return nil, err
	}

	item.Quantity = quantity
	item.TotalPrice = float64(quantity) * item.Dish.Price
	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *cartService) RemoveItem(cartID, itemID string) error {
	if _, err := s.findActiveCartByID(cartID); err != nil {
		return err
	}

	result := s.db.Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrCartItemNotFound
	}
	return nil
}

func (s *cartService) Checkout(userID string) (*models.Cart, error) {
	cart, err := s.GetActiveCart(userID)
	if err != nil {
		return nil, err
	}

	lineItems := make([]pricing.LineItem, 0, len(cart.CartItems))
	for _, item := range cart.CartItems {
		lineItems = append(lineItems, pricing.LineItem{
			Quantity:     item.Quantity,
			PricePerItem: item.PricePerItem,
		})
	}
	cart.TotalPrice = pricing.Total(lineItems, cart.DiscountAmount, cart.VatPercentage, s.clampNegative)

	if err := cart.Transition(models.CartStatusCompleted); err != nil {
		return nil, err
	}
	if err := s.db.Omit("CartItems").Save(cart).Error; err != nil {
		return nil, err
	}
	return cart, nil
}
