package market

import (
	"context"
	"errors"

	"github.com/Nehal2048/book-hive/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateOrder opens a purchase intent against an available sale listing.
// The order and its ordered-item link are written in one transaction; the
// unique index on ordered_items.listing_id backs the duplicate check.
func CreateOrder(ctx context.Context, db *gorm.DB, listingID uint, buyerID uuid.UUID) (uint, error) {
	var orderID uint
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		err := tx.Where("id = ? AND status = ? AND listing_type = ?",
			listingID, models.StatusAvailable, models.ListingSale).
			First(&listing).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invalidState("listing not available")
			}
			return err
		}

		var existing int64
		if err := tx.Model(&models.OrderedItem{}).
			Where("listing_id = ?", listingID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return conflict("this listing is already ordered")
		}

		order := models.Order{BuyerID: buyerID, Status: models.OrderPending}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		item := models.OrderedItem{OrderID: order.ID, ListingID: listingID}
		if err := tx.Create(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return conflict("this listing is already ordered")
			}
			return err
		}

		orderID = order.ID
		return nil
	})
	return orderID, err
}

// OrderView is the read projection for an order: its single listing plus
// buyer and status.
type OrderView struct {
	OrderID   uint               `json:"order_id"`
	ListingID *uint              `json:"listing_id"`
	BuyerID   uuid.UUID          `json:"buyer_id"`
	Status    models.OrderStatus `json:"status"`
}

func GetOrder(ctx context.Context, db *gorm.DB, orderID uint) (OrderView, error) {
	var order models.Order
	if err := db.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderView{}, notFound("order not found")
		}
		return OrderView{}, err
	}
	return orderView(ctx, db, order)
}

func OrdersByBuyer(ctx context.Context, db *gorm.DB, buyerID uuid.UUID) ([]OrderView, error) {
	var orders []models.Order
	if err := db.WithContext(ctx).Where("buyer_id = ?", buyerID).Find(&orders).Error; err != nil {
		return nil, err
	}

	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		view, err := orderView(ctx, db, orders[i])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func orderView(ctx context.Context, db *gorm.DB, order models.Order) (OrderView, error) {
	view := OrderView{OrderID: order.ID, BuyerID: order.BuyerID, Status: order.Status}

	var item models.OrderedItem
	err := db.WithContext(ctx).Where("order_id = ?", order.ID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return view, nil
		}
		return OrderView{}, err
	}
	view.ListingID = &item.ListingID
	return view, nil
}

type PaymentOutcome string

const (
	PaymentCompleted PaymentOutcome = "completed"
	PaymentDeclined  PaymentOutcome = "declined"
)

// PayResult reports how a payment attempt ended. A declined payment is a
// business outcome, not an error: the order is cancelled and nothing else
// changes.
type PayResult struct {
	Outcome       PaymentOutcome
	TransactionID uint
}

// Pay settles a pending order: debit buyer, credit seller, record a success
// transaction, confirm the order and mark the listing sold, all inside one
// store transaction.
func Pay(ctx context.Context, db *gorm.DB, orderID uint) (PayResult, error) {
	var result PayResult
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		err := tx.Where("id = ? AND status = ?", orderID, models.OrderPending).First(&order).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("order not found or already processed")
			}
			return err
		}

		var item models.OrderedItem
		if err := tx.Where("order_id = ?", orderID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal("ordered item not found")
			}
			return err
		}

		var listing models.Listing
		if err := tx.First(&listing, item.ListingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal("listing not found for order")
			}
			return err
		}

		var buyer models.User
		if err := tx.First(&buyer, "id = ?", order.BuyerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal("buyer not found")
			}
			return err
		}

		if buyer.Balance.LessThan(listing.Price) {
			if err := tx.Model(&models.Order{}).
				Where("id = ?", orderID).
				Update("status", models.OrderCancelled).Error; err != nil {
				return err
			}
			result = PayResult{Outcome: PaymentDeclined}
			return nil
		}

		var seller models.User
		if err := tx.First(&seller, "id = ?", listing.SellerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return internal("seller not found")
			}
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", buyer.ID).
			Update("balance", buyer.Balance.Sub(listing.Price)).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", seller.ID).
			Update("balance", seller.Balance.Add(listing.Price)).Error; err != nil {
			return err
		}

		txn := models.Transaction{
			OrderID:   orderID,
			BuyerID:   buyer.ID,
			SellerID:  seller.ID,
			ListingID: listing.ID,
			Status:    models.TxSuccess,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Order{}).
			Where("id = ?", orderID).
			Updates(map[string]any{
				"status":         models.OrderConfirmed,
				"transaction_id": txn.ID,
			}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Listing{}).
			Where("id = ?", listing.ID).
			Update("status", models.StatusSold).Error; err != nil {
			return err
		}

		result = PayResult{Outcome: PaymentCompleted, TransactionID: txn.ID}
		return nil
	})
	return result, err
}
