package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmfernandez/gin-food-api/internal/models"
)

func TestCreateDish(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	customer := createTestUser(t, db, models.RoleCustomer)

	service := NewDishService(db)

	dish, err := service.CreateDish(admin.ID, &models.Dish{
		Name:        "Fideuà",
		Description: "Noodle paella",
		Price:       12.5,
		Image:       "https://cdn.example.com/fideua.jpg",
		Category:    models.CategoryMain,
	})
	require.NoError(t, err)
	assert.Equal(t, admin.ID, dish.UserID)
	assert.NotEmpty(t, dish.ID)

	// Customers cannot create dishes
	_, err = service.CreateDish(customer.ID, &models.Dish{
		Name: "Nope", Description: "n", Price: 1, Category: models.CategoryMain,
	})
	assert.ErrorIs(t, err, models.ErrAdminOnly)

	// Unknown creator
	_, err = service.CreateDish("ghost", &models.Dish{
		Name: "Nope", Description: "n", Price: 1, Category: models.CategoryMain,
	})
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	// Category outside the fixed enumeration
	_, err = service.CreateDish(admin.ID, &models.Dish{
		Name: "Nope", Description: "n", Price: 1, Category: "Snack",
	})
	assert.ErrorIs(t, err, models.ErrInvalidCategory)
}

func TestUpdateDish(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	customer := createTestUser(t, db, models.RoleCustomer)
	dish := createTestDish(t, db, admin, "Paella", 10)

	service := NewDishService(db)

	updated, err := service.UpdateDish(admin.ID, dish.ID, &models.Dish{Price: 11.5})
	require.NoError(t, err)
	assert.InDelta(t, 11.5, updated.Price, 1e-9)
	assert.Equal(t, "Paella", updated.Name)

	_, err = service.UpdateDish(customer.ID, dish.ID, &models.Dish{Price: 1})
	assert.ErrorIs(t, err, models.ErrAdminOnly)

	_, err = service.UpdateDish(admin.ID, "missing", &models.Dish{Price: 1})
	assert.ErrorIs(t, err, models.ErrDishNotFound)
}

func TestDeleteDish(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	dish := createTestDish(t, db, admin, "Paella", 10)

	service := NewDishService(db)

	require.NoError(t, service.DeleteDish(admin.ID, dish.ID))
	assert.EqualValues(t, 0, countRows(t, db, &models.Dish{}))

	err := service.DeleteDish(admin.ID, dish.ID)
	assert.ErrorIs(t, err, models.ErrDishNotFound)
}

func TestListDishes(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)

	for i := 0; i < 5; i++ {
		createTestDish(t, db, admin, fmt.Sprintf("Dish %d", i), float64(i+1))
	}

	service := NewDishService(db)

	page, err := service.ListDishes(models.CategoryMain, 1, 2)
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.EqualValues(t, 5, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	// Ordered by name descending
	assert.Equal(t, "Dish 4", page.Data[0].Name)

	page, err = service.ListDishes(models.CategoryMain, 3, 2)
	require.NoError(t, err)
	assert.Len(t, page.Data, 1)

	_, err = service.ListDishes("Snack", 1, 2)
	assert.ErrorIs(t, err, models.ErrInvalidCategory)

	page, err = service.ListDishes(models.CategoryDessert, 1, 2)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.EqualValues(t, 0, page.TotalItems)
}
