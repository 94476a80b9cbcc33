package market

import (
	"context"
	"testing"

	"github.com/Nehal2048/book-hive/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller", "0")
	buyer := createUser(t, db, "buyer", "100.00")
	listing := createListing(t, db, seller.ID, models.ListingSale, "25.50")

	orderID, err := CreateOrder(ctx, db, listing.ID, buyer.ID)
	require.NoError(t, err)
	require.NotZero(t, orderID)

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, buyer.ID, order.BuyerID)

	var item models.OrderedItem
	require.NoError(t, db.Where("order_id = ?", orderID).First(&item).Error)
	assert.Equal(t, listing.ID, item.ListingID)
}

func TestCreateOrderValidations(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller", "0")
	buyer := createUser(t, db, "buyer", "100.00")

	t.Run("listing missing", func(t *testing.T) {
		_, err := CreateOrder(ctx, db, 9999, buyer.ID)
		assert.Equal(t, KindInvalidState, KindOf(err))
	})

	t.Run("not a sale listing", func(t *testing.T) {
		borrow := createListing(t, db, seller.ID, models.ListingBorrow, "")
		_, err := CreateOrder(ctx, db, borrow.ID, buyer.ID)
		assert.Equal(t, KindInvalidState, KindOf(err))
	})

	t.Run("already ordered", func(t *testing.T) {
		listing := createListing(t, db, seller.ID, models.ListingSale, "10.00")
		_, err := CreateOrder(ctx, db, listing.ID, buyer.ID)
		require.NoError(t, err)

		other := createUser(t, db, "other", "100.00")
		_, err = CreateOrder(ctx, db, listing.ID, other.ID)
		assert.Equal(t, KindConflict, KindOf(err))
	})
}

func TestPayInsufficientFunds(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller", "5.00")
	buyer := createUser(t, db, "buyer", "10.00")
	listing := createListing(t, db, seller.ID, models.ListingSale, "25.50")

	orderID, err := CreateOrder(ctx, db, listing.ID, buyer.ID)
	require.NoError(t, err)

	result, err := Pay(ctx, db, orderID)
	require.NoError(t, err)
	assert.Equal(t, PaymentDeclined, result.Outcome)

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderCancelled, order.Status)
	assert.Nil(t, order.TransactionID)

	// No balance or listing change, no transaction row.
	assert.True(t, reloadUser(t, db, buyer.ID).Balance.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, reloadUser(t, db, seller.ID).Balance.Equal(decimal.RequireFromString("5.00")))
	assert.Equal(t, models.StatusAvailable, reloadListing(t, db, listing.ID).Status)

	var count int64
	db.Model(&models.Transaction{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestPaySuccess(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller", "5.00")
	buyer := createUser(t, db, "buyer", "100.00")
	listing := createListing(t, db, seller.ID, models.ListingSale, "25.50")

	orderID, err := CreateOrder(ctx, db, listing.ID, buyer.ID)
	require.NoError(t, err)

	result, err := Pay(ctx, db, orderID)
	require.NoError(t, err)
	assert.Equal(t, PaymentCompleted, result.Outcome)
	require.NotZero(t, result.TransactionID)

	assert.True(t, reloadUser(t, db, buyer.ID).Balance.Equal(decimal.RequireFromString("74.50")))
	assert.True(t, reloadUser(t, db, seller.ID).Balance.Equal(decimal.RequireFromString("30.50")))

	var txn models.Transaction
	require.NoError(t, db.First(&txn, result.TransactionID).Error)
	assert.Equal(t, models.TxSuccess, txn.Status)
	assert.Equal(t, orderID, txn.OrderID)
	assert.Equal(t, buyer.ID, txn.BuyerID)
	assert.Equal(t, seller.ID, txn.SellerID)
	assert.Equal(t, listing.ID, txn.ListingID)

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderConfirmed, order.Status)
	require.NotNil(t, order.TransactionID)
	assert.Equal(t, txn.ID, *order.TransactionID)

	assert.Equal(t, models.StatusSold, reloadListing(t, db, listing.ID).Status)
}

func TestPayOrderNotPending(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller", "0")
	buyer := createUser(t, db, "buyer", "100.00")
	listing := createListing(t, db, seller.ID, models.ListingSale, "10.00")

	orderID, err := CreateOrder(ctx, db, listing.ID, buyer.ID)
	require.NoError(t, err)

	_, err = Pay(ctx, db, orderID)
	require.NoError(t, err)

	_, err = Pay(ctx, db, orderID)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = Pay(ctx, db, 9999)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestGetOrderAndOrdersByBuyer(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller", "0")
	buyer := createUser(t, db, "buyer", "100.00")
	listing := createListing(t, db, seller.ID, models.ListingSale, "10.00")

	orderID, err := CreateOrder(ctx, db, listing.ID, buyer.ID)
	require.NoError(t, err)

	view, err := GetOrder(ctx, db, orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, view.OrderID)
	assert.Equal(t, buyer.ID, view.BuyerID)
	assert.Equal(t, models.OrderPending, view.Status)
	require.NotNil(t, view.ListingID)
	assert.Equal(t, listing.ID, *view.ListingID)

	_, err = GetOrder(ctx, db, 9999)
	assert.Equal(t, KindNotFound, KindOf(err))

	views, err := OrdersByBuyer(ctx, db, buyer.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, orderID, views[0].OrderID)

	views, err = OrdersByBuyer(ctx, db, seller.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}
