package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/jmfernandez/gin-food-api/internal/models"
	"github.com/jmfernandez/gin-food-api/internal/services"
)

// CartController handles HTTP requests for the shopping cart
type CartController interface {
	CreateCart(c *gin.Context)
	GetCartDetail(c *gin.Context)
	AddItemToCart(c *gin.Context)
	UpdateItemInCart(c *gin.Context)
	RemoveItemFromCart(c *gin.Context)
	CheckoutCart(c *gin.Context)
}

type cartController struct {
	service services.CartService
}

// NewCartController creates a new instance of CartController
func NewCartController(service services.CartService) CartController {
	return &cartController{service: service}
}

type addItemRequest struct {
	DishID   string `json:"dishId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type userIDRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// CreateCart opens a new active cart for the user in the request body
// @Summary Create a cart
// @Tags cart
// @Accept json
// @Produce json
// @Param body body userIDRequest true "Cart owner"
// @Success 201 {object} models.Cart
// @Failure 404 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Security BearerAuth
// @Router /cart [post]
func (ctl *cartController) CreateCart(ctx *gin.Context) {
	var req userIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrCodeValidationFailed, models.MsgMissingRequiredFields))
		return
	}

	cart, err := ctl.service.CreateCart(req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound,
				models.NewAPIError(models.ErrCodeNotFound, models.MsgUserNotFound))
		case errors.Is(err, models.ErrCartAlreadyExists):
			ctx.JSON(http.StatusConflict,
				models.NewAPIError(models.ErrCodeConflict, models.MsgCartAlreadyExists))
		default:
			ctl.respondInternal(ctx, err)
		}
		return
	}
	ctx.JSON(http.StatusCreated, cart)
}

// GetCartDetail returns the user's active cart with its items
func (ctl *cartController) GetCartDetail(ctx *gin.Context) {
	cart, err := ctl.service.GetActiveCart(ctx.Param("userId"))
	if err != nil {
		if errors.Is(err, models.ErrCartNotFound) {
			ctx.JSON(http.StatusNotFound,
				models.NewAPIError(models.ErrCodeNotFound, models.MsgCartNotFound))
			return
		}
		ctl.respondInternal(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, cart)
}

// AddItemToCart adds a dish to an active cart; adding the same dish again
// merges the quantity into the existing line
func (ctl *cartController) AddItemToCart(ctx *gin.Context) {
	var req addItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrCodeValidationFailed, models.MsgMissingRequiredFields))
		return
	}

	item, created, err := ctl.service.AddItem(ctx.Param("cartId"), req.DishID, req.Quantity)
	if err != nil {
		if errors.Is(err, models.ErrCartNotFound) || errors.Is(err, models.ErrDishNotFound) {
			ctx.JSON(http.StatusNotFound,
				models.NewAPIError(models.ErrCodeNotFound, models.MsgCartOrDishNotFound))
			return
		}
		ctl.respondInternal(ctx, err)
		return
	}

	if created {
		ctx.JSON(http.StatusCreated, item)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// UpdateItemInCart replaces the quantity of a cart line
func (ctl *cartController) UpdateItemInCart(ctx *gin.Context) {
	var req updateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrCodeValidationFailed, models.MsgMissingRequiredFields))
		return
	}

	item, err := ctl.service.UpdateItemQuantity(ctx.Param("cartId"), ctx.Param("itemId"), req.Quantity)
	if err != nil {
		ctl.respondCartItemError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// RemoveItemFromCart deletes a cart line
func (ctl *cartController) RemoveItemFromCart(ctx *gin.Context) {
	if err := ctl.service.RemoveItem(ctx.Param("cartId"), ctx.Param("itemId")); err != nil {
		ctl.respondCartItemError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": models.MsgCartItemRemoved})
}

// CheckoutCart computes the cart total and marks the cart Completed
// @Summary Checkout the active cart
// @Tags cart
// @Accept json
// @Produce json
// @Param body body userIDRequest true "Cart owner"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /cart/checkout [post]
func (ctl *cartController) CheckoutCart(ctx *gin.Context) {
	var req userIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrCodeValidationFailed, models.MsgMissingRequiredFields))
		return
	}

	cart, err := ctl.service.Checkout(req.UserID)
	if err != nil {
		if errors.Is(err, models.ErrCartNotFound) {
			ctx.JSON(http.StatusNotFound,
				models.NewAPIError(models.ErrCodeNotFound, models.MsgCartNotFound))
			return
		}
		ctl.respondInternal(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": models.MsgCheckoutSuccess,
		"cart":    cart,
	})
}

func (ctl *cartController) respondCartItemError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrCartNotFound):
		ctx.JSON(http.StatusNotFound,
			models.NewAPIError(models.ErrCodeNotFound, models.MsgCartNotFound))
	case errors.Is(err, models.ErrCartItemNotFound):
		ctx.JSON(http.StatusNotFound,
			models.NewAPIError(models.ErrCodeNotFound, models.MsgCartItemNotFound))
	default:
		ctl.respondInternal(ctx, err)
	}
}

func (ctl *cartController) respondInternal(ctx *gin.Context, err error) {
	log.WithError(err).Error("Cart operation failed")
	ctx.JSON(http.StatusInternalServerError,
		models.NewAPIError(models.ErrCodeInternalServer, models.MsgInternalServerError))
}
