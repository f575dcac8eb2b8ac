package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmfernandez/gin-food-api/internal/models"
)

func TestCreateCart(t *testing.T) {
	db := setupTestDB(t)
	customer := createTestUser(t, db, models.RoleCustomer)

	service := NewCartService(db, false)

	cart, err := service.CreateCart(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CartStatusActive, cart.Status)

	// Second Active cart for the same user is a conflict
	_, err = service.CreateCart(customer.ID)
	assert.ErrorIs(t, err, models.ErrCartAlreadyExists)

	_, err = service.CreateCart("no-such-user")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestAddItem(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	customer := createTestUser(t, db, models.RoleCustomer)
	dish := createTestDish(t, db, admin, "Tortilla", 8.5)

	service := NewCartService(db, false)
	cart, err := service.CreateCart(customer.ID)
	require.NoError(t, err)

	item, created, err := service.AddItem(cart.ID, dish.ID, 2)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 2, item.Quantity)
	assert.InDelta(t, 17.0, item.TotalPrice, 1e-9)

	// Adding the same dish again merges into the existing line
	item, created, err = service.AddItem(cart.ID, dish.ID, 1)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 3, item.Quantity)
	assert.InDelta(t, 25.5, item.TotalPrice, 1e-9)

	assert.EqualValues(t, 1, countRows(t, db, &models.CartItem{}))

	_, _, err = service.AddItem(cart.ID, "no-such-dish", 1)
	assert.ErrorIs(t, err, models.ErrDishNotFound)

	_, _, err = service.AddItem("no-such-cart", dish.ID, 1)
	assert.ErrorIs(t, err, models.ErrCartNotFound)
}

func TestUpdateItemQuantity(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	customer := createTestUser(t, db, models.RoleCustomer)
	dish := createTestDish(t, db, admin, "Croquetas", 6)

	service := NewCartService(db, false)
	cart, err := service.CreateCart(customer.ID)
	require.NoError(t, err)

	item, _, err := service.AddItem(cart.ID, dish.ID, 1)
	require.NoError(t, err)

	updated, err := service.UpdateItemQuantity(cart.ID, item.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Quantity)
	assert.InDelta(t, 24.0, updated.TotalPrice, 1e-9)

	_, err = service.UpdateItemQuantity(cart.ID, "no-such-item", 2)
	assert.ErrorIs(t, err, models.ErrCartItemNotFound)
}

func TestRemoveItem(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	customer := createTestUser(t, db, models.RoleCustomer)
	dish := createTestDish(t, db, admin, "Pulpo", 14)

	service := NewCartService(db, false)
	cart, err := service.CreateCart(customer.ID)
	require.NoError(t, err)

	item, _, err := service.AddItem(cart.ID, dish.ID, 1)
	require.NoError(t, err)

	require.NoError(t, service.RemoveItem(cart.ID, item.ID))
	assert.EqualValues(t, 0, countRows(t, db, &models.CartItem{}))

	err = service.RemoveItem(cart.ID, item.ID)
	assert.ErrorIs(t, err, models.ErrCartItemNotFound)
}

func TestCheckout(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	customer := createTestUser(t, db, models.RoleCustomer)
	dishA := createTestDish(t, db, admin, "Paella", 10)
	dishB := createTestDish(t, db, admin, "Gazpacho", 5)

	service := NewCartService(db, false)
	cart, err := service.CreateCart(customer.ID)
	require.NoError(t, err)

	_, _, err = service.AddItem(cart.ID, dishA.ID, 2)
	require.NoError(t, err)
	_, _, err = service.AddItem(cart.ID, dishB.ID, 1)
	require.NoError(t, err)

	require.NoError(t, db.Model(cart).Update("vat_percentage", 10).Error)

	checked, err := service.Checkout(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CartStatusCompleted, checked.Status)
	assert.InDelta(t, 27.5, checked.TotalPrice, 1e-9)

	// Completed is terminal: the cart no longer resolves for mutation
	_, _, err = service.AddItem(cart.ID, dishA.ID, 1)
	assert.ErrorIs(t, err, models.ErrCartNotFound)

	// And no Active cart remains for the user
	_, err = service.Checkout(customer.ID)
	assert.ErrorIs(t, err, models.ErrCartNotFound)
}

func TestCheckoutClampsNegativeTotal(t *testing.T) {
	db := setupTestDB(t)
	admin := createTestUser(t, db, models.RoleAdmin)
	customer := createTestUser(t, db, models.RoleCustomer)
	dish := createTestDish(t, db, admin, "Pan", 2)

	t.Run("without clamp the total goes negative", func(t *testing.T) {
		service := NewCartService(db, false)
		cart, err := service.CreateCart(customer.ID)
		require.NoError(t, err)
		_, _, err = service.AddItem(cart.ID, dish.ID, 1)
		require.NoError(t, err)
		require.NoError(t, db.Model(cart).Update("discount_amount", 10).Error)

		checked, err := service.Checkout(customer.ID)
		require.NoError(t, err)
		assert.InDelta(t, -8.0, checked.TotalPrice, 1e-9)
	})

	t.Run("with clamp the total floors at zero", func(t *testing.T) {
		service := NewCartService(db, true)
		cart, err := service.CreateCart(customer.ID)
		require.NoError(t, err)
		_, _, err = service.AddItem(cart.ID, dish.ID, 1)
		require.NoError(t, err)
		require.NoError(t, db.Model(cart).Update("discount_amount", 10).Error)

		checked, err := service.Checkout(customer.ID)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, checked.TotalPrice, 1e-9)
	})
}
