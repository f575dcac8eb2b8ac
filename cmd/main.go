package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/jmfernandez/gin-food-api/docs" // Import generated docs
	"github.com/jmfernandez/gin-food-api/internal/auth"
	"github.com/jmfernandez/gin-food-api/internal/config"
	"github.com/jmfernandez/gin-food-api/internal/controllers"
	"github.com/jmfernandez/gin-food-api/internal/database"
	"github.com/jmfernandez/gin-food-api/internal/middleware"
	"github.com/jmfernandez/gin-food-api/internal/models"
	"github.com/jmfernandez/gin-food-api/internal/services"
)

var (
	db              *gorm.DB
	configuration   *config.Config
	userController  controllers.UserController
	dishController  controllers.DishController
	cartController  controllers.CartController
	orderController controllers.OrderController
	tokenVerifier   auth.TokenVerifier
)

// @title Food Ordering API
// @version 1.0
// @description Backend for user accounts, dish catalog, shopping carts and orders
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the identity provider token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize identity provider clients
	verifier, err := auth.NewOIDCVerifier(context.Background(), configuration.Auth0Domain, configuration.Auth0ClientID)
	checkPanicErr(err)
	tokenVerifier = verifier
	identityClient := auth.NewAuth0Client(configuration.Auth0Domain, configuration.Auth0ClientID, configuration.Auth0ClientSecret)

	// Initialize services and controllers
	userService := services.NewUserService(db)
	dishService := services.NewDishService(db)
	cartService := services.NewCartService(db, configuration.ClampNegativeTotals)
	orderService := services.NewOrderService(db, configuration.ClampNegativeTotals)

	userController = controllers.NewUserController(userService, identityClient)
	dishController = controllers.NewDishController(dishService)
	cartController = controllers.NewCartController(cartService)
	orderController = controllers.NewOrderController(orderService)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection and migrates the schema
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)

	// Migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.Dish{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	)
	checkPanicErr(err)

	// Seed only if the catalog is empty
	var count int64
	db.Model(&models.Dish{}).Count(&count)
	if count == 0 {
		log.Info("Database is empty, seeding initial data")
		seedDatabase()
	} else {
		log.Info("Database already seeded with initial data")
	}
	return db
}

// seedDatabase seeds an admin account and the dish catalog with initial data.
// Dishes belong to a user, so the seed admin owns the starting catalog.
func seedDatabase() {
	var admin models.User
	if err := db.Where("role = ?", models.RoleAdmin).First(&admin).Error; err != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(config.GetEnvWithDefault("SEED_ADMIN_PASSWORD", "admin-secret-123")), bcrypt.DefaultCost)
		checkPanicErr(err)
		admin = models.User{
			Name:     "Admin User",
			Email:    config.GetEnvWithDefault("SEED_ADMIN_EMAIL", "admin@food.com"),
			Password: string(hash),
			Role:     models.RoleAdmin,
		}
		checkPanicErr(db.Create(&admin).Error)
	}

	active := true
	dishes := []models.Dish{
		{Name: "Bruschetta", Description: "Grilled bread with tomato and basil", Price: 6.50, Image: "bruschetta.jpg", Category: models.CategoryStarter, IsActive: &active},
		{Name: "Margherita Pizza", Description: "Tomato sauce, mozzarella and basil", Price: 10.99, Image: "margherita.jpg", Category: models.CategoryMain, IsActive: &active},
		{Name: "Carbonara", Description: "Spaghetti with egg, pecorino and guanciale", Price: 12.50, Image: "carbonara.jpg", Category: models.CategoryMain, IsActive: &active},
		{Name: "Tiramisu", Description: "Coffee-soaked ladyfingers with mascarpone", Price: 5.99, Image: "tiramisu.jpg", Category: models.CategoryDessert, IsActive: &active},
		{Name: "Lemonade", Description: "Freshly squeezed lemonade", Price: 2.99, Image: "lemonade.jpg", Category: models.CategoryDrink, IsActive: &active},
	}
	for _, dish := range dishes {
		dish.UserID = admin.ID
		db.Create(&dish)
	}
	log.Info("Database seeded successfully")
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	router := gin.Default()

	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	// Authentication routes (public)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/signup", userController.SignUp)
		authRoutes.POST("/signin", userController.SignIn)
	}

	// Protected routes require a valid identity provider token
	protected := router.Group("/")
	protected.Use(middleware.RequireAuth(tokenVerifier))
	{
		protected.GET("/users", userController.GetUsers)
		protected.GET("/users/:id", userController.GetUserByID)

		protected.POST("/dish", dishController.CreateDish)
		protected.GET("/dish/:id", dishController.GetDishByID)
		protected.PUT("/dish/:id", dishController.UpdateDish)
		protected.DELETE("/dish/:id", dishController.DeleteDish)
		protected.GET("/dishes", dishController.GetDishes)

		protected.POST("/cart", cartController.CreateCart)
		protected.GET("/cart/user/:userId", cartController.GetCartDetail)
		protected.POST("/cart/:cartId/item", cartController.AddItemToCart)
		protected.PUT("/cart/:cartId/item/:itemId", cartController.UpdateItemInCart)
		protected.DELETE("/cart/:cartId/item/:itemId", cartController.RemoveItemFromCart)
		protected.POST("/cart/checkout", cartController.CheckoutCart)

		protected.POST("/order", orderController.CreateOrder)
		protected.GET("/order/:id", orderController.GetOrderByID)
		protected.PUT("/order/:id", orderController.UpdateOrderStatus)
		protected.GET("/orders/:userId", orderController.GetOrders)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-food-api",
	})
}
