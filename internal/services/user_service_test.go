package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmfernandez/gin-food-api/internal/models"
)

func TestCreateUserAssignsRoles(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	first, err := service.CreateUser(&models.User{
		Name:     "First",
		Email:    "first@example.com",
		Password: "hashed",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, first.Role)
	assert.NotEmpty(t, first.ID)

	second, err := service.CreateUser(&models.User{
		Name:     "Second",
		Email:    "second@example.com",
		Password: "hashed",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, second.Role)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	service := NewUserService(db)

	_, err := service.CreateUser(&models.User{
		Name:     "First",
		Email:    "dup@example.com",
		Password: "hashed",
	})
	require.NoError(t, err)

	_, err = service.CreateUser(&models.User{
		Name:     "Clone",
		Email:    "dup@example.com",
		Password: "hashed",
	})
	assert.ErrorIs(t, err, models.ErrEmailTaken)
}

func TestGetUserByID(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, models.RoleCustomer)

	service := NewUserService(db)

	fetched, err := service.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, fetched.Email)

	_, err = service.GetUserByID("missing")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestGetUsers(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, models.RoleAdmin)
	createTestUser(t, db, models.RoleCustomer)

	service := NewUserService(db)
	users, err := service.GetUsers()
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
