package market

import (
	"testing"

	"github.com/Nehal2048/book-hive/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
// Connections are capped at one so every transaction sees the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Listing{},
		&models.BorrowRecord{},
		&models.ExchangeRecord{},
		&models.Order{},
		&models.OrderedItem{},
		&models.Transaction{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func createUser(t *testing.T, db *gorm.DB, name, balance string) models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    name + "@test.com",
		Balance:  decimal.RequireFromString(balance),
		UserType: models.UserRegular,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return user
}

func createListing(t *testing.T, db *gorm.DB, seller uuid.UUID, typ models.ListingType, price string) models.Listing {
	t.Helper()
	listing := models.Listing{
		SellerID:    seller,
		Title:       "Test Book",
		ListingType: typ,
		Status:      models.StatusAvailable,
	}
	if price != "" {
		listing.Price = decimal.RequireFromString(price)
	}
	if err := db.Create(&listing).Error; err != nil {
		t.Fatalf("create listing: %v", err)
	}
	return listing
}

func reloadListing(t *testing.T, db *gorm.DB, id uint) models.Listing {
	t.Helper()
	var listing models.Listing
	if err := db.First(&listing, id).Error; err != nil {
		t.Fatalf("reload listing %d: %v", id, err)
	}
	return listing
}

func reloadUser(t *testing.T, db *gorm.DB, id uuid.UUID) models.User {
	t.Helper()
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		t.Fatalf("reload user %s: %v", id, err)
	}
	return user
}

// assertSlotEmpty checks the request-slot invariant: request_flag=false
// implies request_type and request_id are both empty.
func assertSlotEmpty(t *testing.T, listing models.Listing) {
	t.Helper()
	if listing.RequestFlag {
		t.Fatalf("listing %d: expected empty request slot, got flag=true", listing.ID)
	}
	if listing.RequestType != models.RequestNone || listing.RequestID != "" {
		t.Fatalf("listing %d: slot invariant broken: type=%q id=%q",
			listing.ID, listing.RequestType, listing.RequestID)
	}
}
