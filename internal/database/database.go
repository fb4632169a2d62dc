package database

import (
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"edustore-service/config"
	"edustore-service/internal/models"
)

func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
	)

	// TranslateError turns driver-specific unique-constraint failures into
	// gorm.ErrDuplicatedKey, which settlement maps to ErrDuplicatePurchase.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	log.Println("Database connection established")
	return db
}

func Migrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.TempUser{},
		&models.Account{},
		&models.Course{},
		&models.EBook{},
		&models.Coupon{},
		&models.AffiliateLink{},
		&models.AffiliateLinkClick{},
		&models.AffiliateLinkPurchase{},
		&models.PendingTransaction{},
		&models.Purchase{},
		&models.PaymentRecord{},
		&models.Withdrawal{},
		&models.BankAccount{},
		&models.UPIAccount{},
		&models.CallbackLog{},
		&models.ArchivedCallbackLog{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}
	log.Println("Database migration completed")
}
