package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/jmfernandez/gin-food-api/internal/models"
	"github.com/jmfernandez/gin-food-api/internal/services"
)

// DishController handles HTTP requests related to the dish catalog
type DishController interface {
	CreateDish(c *gin.Context)
	GetDishByID(c *gin.Context)
	UpdateDish(c *gin.Context)
	DeleteDish(c *gin.Context)
	GetDishes(c *gin.Context)
}

type dishController struct {
	service services.DishService
}

// NewDishController creates a new instance of DishController
func NewDishController(service services.DishService) DishController {
	return &dishController{service: service}
}

type createDishRequest struct {
	Name           string              `json:"name" binding:"required"`
	Description    string              `json:"description" binding:"required"`
	Price          float64             `json:"price" binding:"required,gt=0"`
	Image          string              `json:"image" binding:"required"`
	Category       models.DishCategory `json:"category" binding:"required"`
	UserID         string              `json:"userId" binding:"required"`
	IsActive       *bool               `json:"isActive"`
	AdditionalItem string              `json:"additionalItem"`
}

type updateDishRequest struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Price          float64             `json:"price"`
	Image          string              `json:"image"`
	Category       models.DishCategory `json:"category"`
	UserID         string              `json:"userId" binding:"required"`
	IsActive       *bool               `json:"isActive"`
	AdditionalItem string              `json:"additionalItem"`
}

// CreateDish godoc
// @Summary Create a new dish
// @Description Create a new dish; only the admin user may do this
// @Tags dishes
// @Accept json
// @Produce json
// @Param dish body createDishRequest true "Dish"
// @Success 201 {object} models.Dish
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /dish [post]
func (ctl *dishController) CreateDish(ctx *gin.Context) {
	var req createDishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrCodeValidationFailed, models.MsgMissingRequiredFields))
		return
	}

	dish := &models.Dish{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Image:          req.Image,
		Category:       req.Category,
		IsActive:       req.IsActive,
		AdditionalItem: req.AdditionalItem,
	}

	created, err := ctl.service.CreateDish(req.UserID, dish)
	if err != nil {
		ctl.respondDishError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// GetDishByID godoc
// @Summary Get dish by ID
// @Tags dishes
// @Produce json
// @Param id path string true "Dish ID"
// @Success 200 {object} models.Dish
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /dish/{id} [get]
func (ctl *dishController) GetDishByID(ctx *gin.Context) {
	dish, err := ctl.service.GetDishByID(ctx.Param("id"))
	if err != nil {
		ctl.respondDishError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dish)
}

// UpdateDish godoc
// @Summary Update a dish
// @Tags dishes
// @Accept json
// @Produce json
// @Param id path string true "Dish ID"
// @Param dish body updateDishRequest true "Fields to update"
// @Success 200 {object} models.Dish
// @Failure 400 {object} models.APIError
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /dish/{id} [put]
func (ctl *dishController) UpdateDish(ctx *gin.Context) {
	var req updateDishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrCodeValidationFailed, models.MsgMissingRequiredFields))
		return
	}

	updates := &models.Dish{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Image:          req.Image,
		Category:       req.Category,
		IsActive:       req.IsActive,
		AdditionalItem: req.AdditionalItem,
	}

	dish, err := ctl.service.UpdateDish(req.UserID, ctx.Param("id"), updates)
	if err != nil {
		ctl.respondDishError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dish)
}

// DeleteDish godoc
// @Summary Delete a dish
// @Tags dishes
// @Accept json
// @Produce json
// @Param id path string true "Dish ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /dish/{id} [delete]
func (ctl *dishController) DeleteDish(ctx *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrCodeValidationFailed, models.MsgMissingRequiredFields))
		return
	}

	if err := ctl.service.DeleteDish(req.UserID, ctx.Param("id")); err != nil {
		ctl.respondDishError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": models.MsgDishDeleted})
}

// GetDishes godoc
// @Summary List dishes
// @Description List dishes in a category with pagination
// @Tags dishes
// @Produce json
// @Param category query string false "Dish category" default(Main)
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} services.DishPage
// @Failure 400 {object} models.APIError
// @Security BearerAuth
// @Router /dishes [get]
func (ctl *dishController) GetDishes(ctx *gin.Context) {
	category := models.DishCategory(ctx.DefaultQuery("category", string(models.CategoryMain)))

	page, errPage := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, errLimit := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	if errPage != nil || errLimit != nil || page <= 0 || limit <= 0 {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrCodeBadRequest, models.MsgInvalidPageAndLimit))
		return
	}

	result, err := ctl.service.ListDishes(category, page, limit)
	if err != nil {
		ctl.respondDishError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// respondDishError maps service errors onto HTTP status codes
func (ctl *dishController) respondDishError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrUserNotFound):
		ctx.JSON(http.StatusNotFound,
			models.NewAPIError(models.ErrCodeNotFound, models.MsgUserNotFound))
	case errors.Is(err, models.ErrDishNotFound):
		ctx.JSON(http.StatusNotFound,
			models.NewAPIError(models.ErrCodeNotFound, models.MsgDishNotFound))
	case errors.Is(err, models.ErrAdminOnly):
		ctx.JSON(http.StatusForbidden,
			models.NewAPIError(models.ErrCodeForbidden, models.MsgAdminOnly))
	case errors.Is(err, models.ErrInvalidCategory):
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrCodeBadRequest, models.MsgInvalidCategory))
	default:
		log.WithError(err).Error("Dish operation failed")
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrCodeInternalServer, models.MsgInternalServerError))
	}
}
