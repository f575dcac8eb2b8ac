package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/jmfernandez/gin-food-api/internal/models"
	"github.com/jmfernandez/gin-food-api/internal/services"
)

// OrderController handles HTTP requests for order placement and tracking
type OrderController interface {
	CreateOrder(c *gin.Context)
	GetOrderByID(c *gin.Context)
	GetOrders(c *gin.Context)
	UpdateOrderStatus(c *gin.Context)
}

type orderController struct {
	service services.OrderService
}

// NewOrderController creates a new instance of OrderController
func NewOrderController(service services.OrderService) OrderController {
	return &orderController{service: service}
}

type updateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// CreateOrder godoc
// @Summary Place an order
// @Description Atomically convert the user's pending cart into an order with one order item per cart item
// @Tags orders
// @Accept json
// @Produce json
// @Param body body userIDRequest true "Order owner"
// @Success 201 {object} models.Order
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Security BearerAuth
// @Router /order [post]
func (ctl *orderController) CreateOrder(ctx *gin.Context) {
	var req userIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrCodeValidationFailed, models.MsgMissingRequiredFields))
		return
	}

	order, err := ctl.service.CreateOrder(req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUserNotFound):
			ctx.JSON(http.StatusNotFound,
				models.NewAPIError(models.ErrCodeNotFound, models.MsgUserNotFound))
		case errors.Is(err, models.ErrCartNotFound):
			ctx.JSON(http.StatusNotFound,
				models.NewAPIError(models.ErrCodeNotFound, models.MsgCartNotFound))
		default:
			// Persistence failures are rolled back and surfaced generically
			log.WithError(err).Error("Failed to create order")
			ctx.JSON(http.StatusInternalServerError,
				models.NewAPIError(models.ErrCodeInternalServer, models.MsgInternalServerError))
		}
		return
	}
	ctx.JSON(http.StatusCreated, order)
}

// GetOrderByID godoc
// @Summary Get an order
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.Order
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /order/{id} [get]
func (ctl *orderController) GetOrderByID(ctx *gin.Context) {
	order, err := ctl.service.GetOrderByID(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			ctx.JSON(http.StatusNotFound,
				models.NewAPIError(models.ErrCodeNotFound, models.MsgOrderNotFound))
			return
		}
		log.WithError(err).Error("Failed to retrieve order")
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrCodeInternalServer, models.MsgInternalServerError))
		return
	}
	ctx.JSON(http.StatusOK, order)
}

// GetOrders godoc
// @Summary List a user's orders
// @Tags orders
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} models.Order
// @Security BearerAuth
// @Router /orders/{userId} [get]
func (ctl *orderController) GetOrders(ctx *gin.Context) {
	orders, err := ctl.service.GetOrdersForUser(ctx.Param("userId"))
	if err != nil {
		log.WithError(err).Error("Failed to retrieve orders")
		ctx.JSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrCodeInternalServer, models.MsgInternalServerError))
		return
	}
	ctx.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus godoc
// @Summary Update order status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body updateOrderStatusRequest true "New status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /order/{id} [put]
func (ctl *orderController) UpdateOrderStatus(ctx *gin.Context) {
	var req updateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest,
			models.NewAPIError(models.ErrCodeValidationFailed, models.MsgMissingRequiredFields))
		return
	}

	if _, err := ctl.service.UpdateOrderStatus(ctx.Param("id"), req.Status); err != nil {
		switch {
		case errors.Is(err, models.ErrOrderNotFound):
			ctx.JSON(http.StatusNotFound,
				models.NewAPIError(models.ErrCodeNotFound, models.MsgOrderNotFound))
		case errors.Is(err, models.ErrInvalidStatus):
			ctx.JSON(http.StatusBadRequest,
				models.NewAPIError(models.ErrCodeBadRequest, models.MsgInvalidOrderStatus))
		default:
			log.WithError(err).Error("Failed to update order status")
			ctx.JSON(http.StatusInternalServerError,
				models.NewAPIError(models.ErrCodeInternalServer, models.MsgInternalServerError))
		}
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": models.MsgOrderStatusUpdated})
}
