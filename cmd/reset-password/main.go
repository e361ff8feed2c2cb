package main

import (
	"flag"
	"log"

	"go-pos-backend/internal/config"
	"go-pos-backend/internal/model"
	"go-pos-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Operator tool for when an admin locks themselves out. Resets the given
// account's password and rotates its token version so active sessions die.
func main() {
	username := flag.String("username", "admin", "account to reset")
	password := flag.String("password", "Admin@123", "new password")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB(cfg.DatabaseURL)

	// 3. Find the account
	var user model.User
	if err := db.Where("username = ?", *username).First(&user).Error; err != nil {
		log.Fatalf("User %s not found in database: %v", *username, err)
	}

	// 4. Hash the new password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	// 5. Update, killing any live sessions along the way
	updates := map[string]interface{}{
		"password":      string(hashedPassword),
		"token_version": uuid.New().String(),
	}
	if err := db.Model(&user).Updates(updates).Error; err != nil {
		log.Fatalf("Failed to update password in DB: %v", err)
	}

	log.Printf("Password for %s has been reset", *username)
}
