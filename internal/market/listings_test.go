package market

import (
	"context"
	"testing"

	"github.com/Nehal2048/book-hive/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateListing(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller", "0")

	listing, err := CreateListing(ctx, db, seller.ID, CreateListingInput{
		Title:       "SICP",
		Description: "Wizard book",
		ListingType: models.ListingSale,
		Price:       decimal.RequireFromString("12.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, listing.Status)
	assert.Equal(t, seller.ID, listing.SellerID)
	assertSlotEmpty(t, listing)

	t.Run("unknown type", func(t *testing.T) {
		_, err := CreateListing(ctx, db, seller.ID, CreateListingInput{
			Title:       "X",
			ListingType: "rental",
		})
		assert.Equal(t, KindInvalidState, KindOf(err))
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := CreateListing(ctx, db, seller.ID, CreateListingInput{
			ListingType: models.ListingBorrow,
		})
		assert.Equal(t, KindInvalidState, KindOf(err))
	})

	t.Run("sale without price", func(t *testing.T) {
		_, err := CreateListing(ctx, db, seller.ID, CreateListingInput{
			Title:       "X",
			ListingType: models.ListingSale,
		})
		assert.Equal(t, KindInvalidState, KindOf(err))
	})

	t.Run("borrow without price is fine", func(t *testing.T) {
		_, err := CreateListing(ctx, db, seller.ID, CreateListingInput{
			Title:       "X",
			ListingType: models.ListingBorrow,
		})
		assert.NoError(t, err)
	})
}

func TestGetAndListListings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller", "0")
	available := createListing(t, db, seller.ID, models.ListingBorrow, "")
	sold := createListing(t, db, seller.ID, models.ListingSale, "9.00")
	require.NoError(t, db.Model(&models.Listing{}).Where("id = ?", sold.ID).
		Update("status", models.StatusSold).Error)

	got, err := GetListing(ctx, db, available.ID)
	require.NoError(t, err)
	assert.Equal(t, available.ID, got.ID)

	_, err = GetListing(ctx, db, 9999)
	assert.Equal(t, KindNotFound, KindOf(err))

	listings, err := AvailableListings(ctx, db)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, available.ID, listings[0].ID)
}
