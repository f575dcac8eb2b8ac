package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jmfernandez/gin-food-api/internal/models"
)

// UserService provides account lookups and local account creation.
// Credential handling against the identity provider lives in internal/auth.
type UserService interface {
	// CreateUser stores a new user, assigning the admin role to the first
	// account ever created and customer to everyone after it
	CreateUser(user *models.User) (*models.User, error)
	// GetUsers retrieves all users
	GetUsers() ([]models.User, error)
	// GetUserByID retrieves a user by its ID
	GetUserByID(id string) (*models.User, error)
	// GetUserByEmail retrieves a user by its email address
	GetUserByEmail(email string) (*models.User, error)
}

type userService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(user *models.User) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return nil, models.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// The first account becomes the single admin; everyone else is a
	// customer. Read-then-write only, so two concurrent first signups can
	// race; the store carries no uniqueness constraint on the role.
	var adminCount int64
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount).Error; err != nil {
		return nil, err
	}
	if adminCount == 0 {
		user.Role = models.RoleAdmin
	} else {
		user.Role = models.RoleCustomer
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
