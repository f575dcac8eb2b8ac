package main

import (
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jmfernandez/gin-food-api/internal/models"
)

// Bootstraps a local admin account for development. Signup normally promotes
// the first user to admin; this script covers databases seeded out of band.
func main() {
	email := flag.String("email", "admin@food.com", "Admin email")
	name := flag.String("name", "Admin User", "Admin name")
	password := flag.String("password", "admin-secret-123", "Admin password")
	dbPath := flag.String("db", "food_api.sqlite", "Path to the SQLite database")
	flag.Parse()

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}

	var existing models.User
	if err := db.Where("email = ?", *email).First(&existing).Error; err == nil {
		fmt.Printf("Admin user already exists!\n")
		fmt.Printf("Email: %s\n", existing.Email)
		fmt.Printf("Role: %s\n", existing.Role)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Name:     *name,
		Email:    *email,
		Password: string(hash),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	fmt.Printf("✓ Admin user created!\n")
	fmt.Printf("ID: %s\n", admin.ID)
	fmt.Printf("Email: %s\n", *email)
	fmt.Printf("Password: %s\n", *password)
	fmt.Println("\nSign in for a token:")
	fmt.Printf("curl -X POST http://localhost:8080/auth/signin \\\n")
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\"email\": \"%s\", \"password\": \"%s\"}'\n", *email, *password)
}
