package market

import (
	"context"
	"testing"

	"github.com/Nehal2048/book-hive/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransactionFromOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller", "0")
	buyer := createUser(t, db, "buyer", "100.00")
	listing := createListing(t, db, seller.ID, models.ListingSale, "10.00")

	orderID, err := CreateOrder(ctx, db, listing.ID, buyer.ID)
	require.NoError(t, err)

	txn, err := CreateTransactionFromOrder(ctx, db, orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, txn.OrderID)
	assert.Equal(t, buyer.ID, txn.BuyerID)
	assert.Equal(t, seller.ID, txn.SellerID)
	assert.Equal(t, listing.ID, txn.ListingID)
	assert.Equal(t, models.TxPending, txn.Status)

	_, err = CreateTransactionFromOrder(ctx, db, 9999)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestUpdateTransactionStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller", "0")
	buyer := createUser(t, db, "buyer", "100.00")
	listing := createListing(t, db, seller.ID, models.ListingSale, "10.00")
	orderID, err := CreateOrder(ctx, db, listing.ID, buyer.ID)
	require.NoError(t, err)
	txn, err := CreateTransactionFromOrder(ctx, db, orderID)
	require.NoError(t, err)

	updated, err := UpdateTransactionStatus(ctx, db, txn.ID, models.TxFailed)
	require.NoError(t, err)
	assert.Equal(t, models.TxFailed, updated.Status)

	_, err = UpdateTransactionStatus(ctx, db, txn.ID, "bogus")
	assert.Equal(t, KindInvalidState, KindOf(err))

	_, err = UpdateTransactionStatus(ctx, db, 9999, models.TxSuccess)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestDeleteTransaction(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller", "0")
	buyer := createUser(t, db, "buyer", "100.00")
	listing := createListing(t, db, seller.ID, models.ListingSale, "10.00")
	orderID, err := CreateOrder(ctx, db, listing.ID, buyer.ID)
	require.NoError(t, err)
	txn, err := CreateTransactionFromOrder(ctx, db, orderID)
	require.NoError(t, err)

	require.NoError(t, DeleteTransaction(ctx, db, txn.ID))

	_, err = GetTransaction(ctx, db, txn.ID)
	assert.Equal(t, KindNotFound, KindOf(err))

	err = DeleteTransaction(ctx, db, txn.ID)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestListAndGetTransactions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seller := createUser(t, db, "seller", "0")
	buyer := createUser(t, db, "buyer", "100.00")

	first := createListing(t, db, seller.ID, models.ListingSale, "10.00")
	second := createListing(t, db, seller.ID, models.ListingSale, "15.00")

	for _, l := range []models.Listing{first, second} {
		orderID, err := CreateOrder(ctx, db, l.ID, buyer.ID)
		require.NoError(t, err)
		_, err = CreateTransactionFromOrder(ctx, db, orderID)
		require.NoError(t, err)
	}

	txns, err := AllTransactions(ctx, db)
	require.NoError(t, err)
	assert.Len(t, txns, 2)

	got, err := GetTransaction(ctx, db, txns[0].ID)
	require.NoError(t, err)
	assert.Equal(t, txns[0].ID, got.ID)
}
