package seed

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/Nehal2048/book-hive/internal/logger"
	"github.com/Nehal2048/book-hive/internal/models"
	"github.com/Nehal2048/book-hive/internal/store"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	seedPassword = "password123"
	adminEmail   = "admin@bookhive.local"
)

var testUsers = []struct {
	Name    string
	Email   string
	Balance string
}{
	{"Anna Reader", "anna@test.com", "100.00"},
	{"Ben Lender", "ben@test.com", "50.00"},
	{"Cara Swapper", "cara@test.com", "10.00"},
}

func Run() {
	db := store.DB
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		logger.Log.Fatal("seed check failed", zap.Error(err))
	}
	if count > 0 {
		logger.Log.Info("seed already applied, skipping")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Fatal("failed to hash seed password", zap.Error(err))
	}
	hashed := string(hash)

	err = db.Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			Name:     "Admin",
			Email:    adminEmail,
			Password: hashed,
			Balance:  decimal.Zero,
			UserType: models.UserAdmin,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}

		users := make([]models.User, 0, len(testUsers))
		for _, u := range testUsers {
			user := models.User{
				Name:     u.Name,
				Email:    u.Email,
				Password: hashed,
				Balance:  decimal.RequireFromString(u.Balance),
				UserType: models.UserRegular,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			users = append(users, user)
		}

		listings := []models.Listing{
			{
				SellerID:    users[0].ID,
				Title:       "The Go Programming Language",
				Description: "Hardcover, lightly used",
				ListingType: models.ListingSale,
				Status:      models.StatusAvailable,
				Price:       decimal.RequireFromString("25.50"),
			},
			{
				SellerID:    users[1].ID,
				Title:       "Designing Data-Intensive Applications",
				Description: "Available to borrow for a few weeks",
				ListingType: models.ListingBorrow,
				Status:      models.StatusAvailable,
			},
			{
				SellerID:    users[1].ID,
				Title:       "The Pragmatic Programmer",
				Description: "Looking to swap",
				ListingType: models.ListingExchange,
				Status:      models.StatusAvailable,
			},
			{
				SellerID:    users[2].ID,
				Title:       "Clean Architecture",
				Description: "Swap for something similar",
				ListingType: models.ListingExchange,
				Status:      models.StatusAvailable,
			},
		}
		for i := range listings {
			if err := tx.Create(&listings[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Log.Fatal("seed failed", zap.Error(err))
	}
	logger.Log.Info("seeded demo users and listings", zap.String("password", seedPassword))
}
