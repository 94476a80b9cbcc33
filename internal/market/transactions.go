package market

import (
	"context"
	"errors"

	"github.com/Nehal2048/book-hive/internal/models"
	"gorm.io/gorm"
)

// CreateTransactionFromOrder inserts a pending transaction for an order,
// deriving buyer, seller and listing through the ordered-item link. This is
// the administrative path; the payment pipeline writes its own success rows.
func CreateTransactionFromOrder(ctx context.Context, db *gorm.DB, orderID uint) (models.Transaction, error) {
	var txn models.Transaction
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("order not found")
			}
			return err
		}

		var item models.OrderedItem
		if err := tx.Where("order_id = ?", orderID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("ordered item not found")
			}
			return err
		}

		var listing models.Listing
		if err := tx.First(&listing, item.ListingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("listing not found")
			}
			return err
		}

		txn = models.Transaction{
			OrderID:   orderID,
			BuyerID:   order.BuyerID,
			SellerID:  listing.SellerID,
			ListingID: listing.ID,
			Status:    models.TxPending,
		}
		return tx.Create(&txn).Error
	})
	return txn, err
}

func AllTransactions(ctx context.Context, db *gorm.DB) ([]models.Transaction, error) {
	var txns []models.Transaction
	err := db.WithContext(ctx).Find(&txns).Error
	return txns, err
}

func GetTransaction(ctx context.Context, db *gorm.DB, id uint) (models.Transaction, error) {
	var txn models.Transaction
	if err := db.WithContext(ctx).First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Transaction{}, notFound("transaction not found")
		}
		return models.Transaction{}, err
	}
	return txn, nil
}

// UpdateTransactionStatus changes a transaction's status and returns the
// updated row.
func UpdateTransactionStatus(ctx context.Context, db *gorm.DB, id uint, status models.TransactionStatus) (models.Transaction, error) {
	switch status {
	case models.TxPending, models.TxSuccess, models.TxFailed:
	default:
		return models.Transaction{}, invalidState("status must be pending, success or failed")
	}

	res := db.WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return models.Transaction{}, res.Error
	}
	if res.RowsAffected == 0 {
		return models.Transaction{}, notFound("transaction not found")
	}
	return GetTransaction(ctx, db, id)
}

func DeleteTransaction(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&models.Transaction{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("transaction not found")
	}
	return nil
}
