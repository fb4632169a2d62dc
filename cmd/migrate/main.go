package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"edustore-service/config"
	"edustore-service/internal/database"
	"edustore-service/internal/models"
	"edustore-service/pkg/common"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	cfg := config.Load()
	db := database.Connect(cfg)

	log.Println("Running database migrations...")
	database.Migrate(db)

	// Seed the back-office admin if configured and absent.
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		var existing models.User
		if db.Where("email = ?", adminEmail).First(&existing).Error == nil {
			log.Println("Admin user already exists, skipping seed")
		} else {
			hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Fatal("Failed to hash admin password: ", err)
			}
			admin := models.User{
				Name:     "Admin",
				Email:    adminEmail,
				Phone:    "0000000000",
				Password: string(hashed),
				RefCode:  common.ShortCode(),
				IsAdmin:  true,
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Fatal("Failed to seed admin user: ", err)
			}
			log.Printf("Seeded admin user %s", adminEmail)
		}
	}

	log.Println("Migrations completed successfully!")
}
