package market

import (
	"context"
	"errors"

	"github.com/Nehal2048/book-hive/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateListingInput struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	ListingType models.ListingType `json:"listing_type"`
	Price       decimal.Decimal    `json:"price"`
}

// CreateListing publishes a new listing for a seller. New listings start
// available with an empty request slot.
func CreateListing(ctx context.Context, db *gorm.DB, sellerID uuid.UUID, in CreateListingInput) (models.Listing, error) {
	switch in.ListingType {
	case models.ListingSale, models.ListingBorrow, models.ListingExchange:
	default:
		return models.Listing{}, invalidState("listing_type must be sale, borrow or exchange")
	}
	if in.Title == "" {
		return models.Listing{}, invalidState("title is required")
	}
	if in.ListingType == models.ListingSale && !in.Price.IsPositive() {
		return models.Listing{}, invalidState("sale listings require a positive price")
	}

	listing := models.Listing{
		SellerID:    sellerID,
		Title:       in.Title,
		Description: in.Description,
		ListingType: in.ListingType,
		Status:      models.StatusAvailable,
		Price:       in.Price,
	}
	if err := db.WithContext(ctx).Create(&listing).Error; err != nil {
		return models.Listing{}, err
	}
	return listing, nil
}

func GetListing(ctx context.Context, db *gorm.DB, id uint) (models.Listing, error) {
	var listing models.Listing
	if err := db.WithContext(ctx).First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Listing{}, notFound("listing not found")
		}
		return models.Listing{}, err
	}
	return listing, nil
}

func AvailableListings(ctx context.Context, db *gorm.DB) ([]models.Listing, error) {
	var listings []models.Listing
	err := db.WithContext(ctx).
		Where("status = ?", models.StatusAvailable).
		Order("created_at DESC").
		Find(&listings).Error
	return listings, err
}
