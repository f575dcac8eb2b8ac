package services

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/jmfernandez/gin-food-api/internal/models"
)

// DishPage is one page of the dish catalog together with pagination totals
type DishPage struct {
	Data       []models.Dish `json:"data"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalItems int64         `json:"totalItems"`
	TotalPages int           `json:"totalPages"`
}

// DishService provides methods to manage the dish catalog.
// All mutations are restricted to the admin user.
type DishService interface {
	// CreateDish creates a new dish on behalf of userID
	CreateDish(userID string, dish *models.Dish) (*models.Dish, error)
	// GetDishByID retrieves a dish by its ID
	GetDishByID(id string) (*models.Dish, error)
	// UpdateDish applies the non-zero fields of updates to an existing dish
	UpdateDish(userID, id string, updates *models.Dish) (*models.Dish, error)
	// DeleteDish removes a dish from the catalog
	DeleteDish(userID, id string) error
	// ListDishes returns one page of dishes in the given category
	ListDishes(category models.DishCategory, page, limit int) (*DishPage, error)
}

type dishService struct {
	db *gorm.DB
}

// NewDishService creates a new instance of DishService
func NewDishService(db *gorm.DB) DishService {
	return &dishService{db: db}
}

// requireAdmin loads the acting user and checks its stored role
func (s *dishService) requireAdmin(userID string) error {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrUserNotFound
		}
		return err
	}
	if user.Role != models.RoleAdmin {
		return models.ErrAdminOnly
	}
	return nil
}

func (s *dishService) CreateDish(userID string, dish *models.Dish) (*models.Dish, error) {
	if err := s.requireAdmin(userID); err != nil {
		return nil, err
	}
	if !dish.Category.Valid() {
		return nil, models.ErrInvalidCategory
	}

	dish.UserID = userID
	if err := s.db.Create(dish).Error; err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *dishService) GetDishByID(id string) (*models.Dish, error) {
	var dish models.Dish
	if err := s.db.Where("id = ?", id).First(&dish).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrDishNotFound
		}
		return nil, err
	}
	return &dish, nil
}

func (s *dishService) UpdateDish(userID, id string, updates *models.Dish) (*models.Dish, error) {
	if err := s.requireAdmin(userID); err != nil {
		return nil, err
	}

	dish, err := s.GetDishByID(id)
	if err != nil {
		return nil, err
	}

	// Merge the provided fields onto the stored record
	if updates.Name != "" {
		dish.Name = updates.Name
	}
	if updates.Description != "" {
		dish.Description = updates.Description
	}
	if updates.Price > 0 {
		dish.Price = updates.Price
	}
	if updates.Image != "" {
		dish.Image = updates.Image
	}
	if updates.Category != "" {
		if !updates.Category.Valid() {
			return nil, models.ErrInvalidCategory
		}
		dish.Category = updates.Category
	}
	if updates.IsActive != nil {
		dish.IsActive = updates.IsActive
	}
	if updates.AdditionalItem != "" {
		dish.AdditionalItem = updates.AdditionalItem
	}

	if err := s.db.Save(dish).Error; err != nil {
		return nil, err
	}
	return dish, nil
}

func (s *dishService) DeleteDish(userID, id string) error {
	if err := s.requireAdmin(userID); err != nil {
		return err
	}

	result := s.db.Where("id = ?", id).Delete(&models.Dish{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.ErrDishNotFound
	}
	return nil
}

func (s *dishService) ListDishes(category models.DishCategory, page, limit int) (*DishPage, error) {
	if !category.Valid() {
		return nil, models.ErrInvalidCategory
	}

	var total int64
	if err := s.db.Model(&models.Dish{}).Where("category = ?", category).Count(&total).Error; err != nil {
		return nil, err
	}

	var dishes []models.Dish
	offset := (page - 1) * limit
	if err := s.db.Where("category = ?", category).
		Order("name DESC").
		Limit(limit).
		Offset(offset).
		Find(&dishes).Error; err != nil {
		return nil, err
	}

	return &DishPage{
		Data:       dishes,
		Page:       page,
		Limit:      limit,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}
