package services

import (
	"errors"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jmfernandez/gin-food-api/internal/models"
	"github.com/jmfernandez/gin-food-api/internal/pricing"
)

// OrderUnitOfWork is the scope of persistence operations available while
// assembling an order. Every call inside one unit of work either commits
// together or rolls back together.
type OrderUnitOfWork interface {
	FindUserByID(id string) (*models.User, error)
	FindPendingCart(userID string) (*models.Cart, error)
	CreateOrder(order *models.Order) error
	CreateOrderItem(item *models.OrderItem) error
	SaveCart(cart *models.Cart) error
}

// UnitOfWorkRunner executes a function inside one atomic unit of work.
// A non-nil error from the function rolls everything back.
type UnitOfWorkRunner interface {
	InTransaction(fn func(OrderUnitOfWork) error) error
}

type gormRunner struct {
	db *gorm.DB
}

// NewGormUnitOfWorkRunner wraps a gorm database in a UnitOfWorkRunner backed
// by a database transaction.
func NewGormUnitOfWorkRunner(db *gorm.DB) UnitOfWorkRunner {
	return &gormRunner{db: db}
}

func (r *gormRunner) InTransaction(fn func(OrderUnitOfWork) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&gormUnitOfWork{tx: tx})
	})
}

type gormUnitOfWork struct {
	tx *gorm.DB
}

func (u *gormUnitOfWork) FindUserByID(id string) (*models.User, error) {
	var user models.User
	if err := u.tx.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *gormUnitOfWork) FindPendingCart(userID string) (*models.Cart, error) {
	var cart models.Cart
	err := u.tx.Preload("CartItems.Dish").Preload("CartItems").
		Where("user_id = ? AND status = ?", userID, models.CartStatusPending).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (u *gormUnitOfWork) CreateOrder(order *models.Order) error {
	return u.tx.Create(order).Error
}

func (u *gormUnitOfWork) CreateOrderItem(item *models.OrderItem) error {
	return u.tx.Create(item).Error
}

func (u *gormUnitOfWork) SaveCart(cart *models.Cart) error {
	return u.tx.Omit(clause.Associations).Save(cart).Error
}

// OrderService turns a user's pending cart into an order and serves order
// lookups and status updates.
type OrderService interface {
	// CreateOrder atomically creates an order with one order item per cart
	// item from the user's Pending cart and marks that cart Converted
	CreateOrder(userID string) (*models.Order, error)
	// GetOrderByID retrieves an order with its items and dishes
	GetOrderByID(id string) (*models.Order, error)
	// GetOrdersForUser retrieves all orders placed by the user
	GetOrdersForUser(userID string) ([]models.Order, error)
	// UpdateOrderStatus replaces the status of an existing order
	UpdateOrderStatus(id string, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	db            *gorm.DB
	runner        UnitOfWorkRunner
	clampNegative bool
}

// NewOrderService creates a new instance of OrderService backed by
// database transactions.
func NewOrderService(db *gorm.DB, clampNegative bool) OrderService {
	return &orderService{
		db:            db,
		runner:        NewGormUnitOfWorkRunner(db),
		clampNegative: clampNegative,
	}
}

func (s *orderService) CreateOrder(userID string) (*models.Order, error) {
	var created *models.Order

	err := s.runner.InTransaction(func(uow OrderUnitOfWork) error {
		user, err := uow.FindUserByID(userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrUserNotFound
			}
			return err
		}

		cart, err := uow.FindPendingCart(user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrCartNotFound
			}
			return err
		}

		// The cart total is derived, not authoritative: recompute it from
		// the cart lines before copying it onto the order
		lineItems := make([]pricing.LineItem, 0, len(cart.CartItems))
		for _, item := range cart.CartItems {
			lineItems = append(lineItems, pricing.LineItem{
				Quantity:     item.Quantity,
				PricePerItem: item.PricePerItem,
			})
		}
		cart.TotalPrice = pricing.Total(lineItems, cart.DiscountAmount, cart.VatPercentage, s.clampNegative)

		order := &models.Order{
			Status:         models.OrderStatusPending,
			TotalPrice:     cart.TotalPrice,
			VatPercentage:  cart.VatPercentage,
			DiscountAmount: cart.DiscountAmount,
			UserID:         user.ID,
			CartID:         cart.ID,
		}
		if err := uow.CreateOrder(order); err != nil {
			return err
		}

		for _, cartItem := range cart.CartItems {
			orderItem := models.OrderItem{
				Quantity:     cartItem.Quantity,
				PricePerItem: cartItem.PricePerItem,
				TotalPrice:   cartItem.TotalPrice,
				DishID:       cartItem.DishID,
				OrderID:      order.ID,
			}
			if err := uow.CreateOrderItem(&orderItem); err != nil {
				return err
			}
			order.OrderItems = append(order.OrderItems, orderItem)
		}

		if err := cart.Transition(models.CartStatusConverted); err != nil {
			return err
		}
		if err := uow.SaveCart(cart); err != nil {
			return err
		}

		created = order
		return nil
	})
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) || errors.Is(err, models.ErrCartNotFound) {
			return nil, err
		}
		log.WithError(err).Error("Order assembly failed, transaction rolled back")
		return nil, err
	}
	return created, nil
}

func (s *orderService) GetOrderByID(id string) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("OrderItems.Dish").Preload("OrderItems").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *orderService) GetOrdersForUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("OrderItems.Dish").Preload("OrderItems").
		Where("user_id = ?", userID).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *orderService) UpdateOrderStatus(id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, models.ErrInvalidStatus
	}

	var order models.Order
	if err := s.db.Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrOrderNotFound
		}
		return nil, err
	}

	order.Status = status
	if err := s.db.Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
