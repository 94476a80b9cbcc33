package market

import (
	"context"
	"errors"
	"strconv"

	"github.com/Nehal2048/book-hive/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SendExchangeRequest proposes swapping your listing for the target. Both
// listings are claimed inside one transaction: the target becomes a received
// request pointing at your listing, yours becomes a sent request pointing at
// the target. If either conditional claim misses, the whole pair rolls back.
func SendExchangeRequest(ctx context.Context, db *gorm.DB, targetID, yourID uint) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.Listing
		if err := tx.First(&target, targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("target listing not found")
			}
			return err
		}

		var yours models.Listing
		if err := tx.First(&yours, yourID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("your listing not found")
			}
			return err
		}

		if target.SellerID == yours.SellerID {
			return invalidState("cannot request your own listing")
		}
		if target.ListingType != models.ListingExchange || yours.ListingType != models.ListingExchange {
			return invalidState("both must be exchange listings")
		}
		if target.RequestFlag || yours.RequestFlag {
			return conflict("one of the listings already has active request")
		}
		if target.Status != models.StatusAvailable || yours.Status != models.StatusAvailable {
			return invalidState("both listings must be available")
		}

		if err := claimExchangeSlot(tx, targetID, models.RequestReceived, yourID); err != nil {
			return err
		}
		return claimExchangeSlot(tx, yourID, models.RequestSent, targetID)
	})
}

func claimExchangeSlot(tx *gorm.DB, listingID uint, reqType models.RequestType, counterpartID uint) error {
	res := tx.Model(&models.Listing{}).
		Where("id = ? AND request_flag = ? AND status = ?", listingID, false, models.StatusAvailable).
		Updates(map[string]any{
			"request_flag": true,
			"request_type": reqType,
			"request_id":   strconv.FormatUint(uint64(counterpartID), 10),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return conflict("one of the listings already has active request")
	}
	return nil
}

type ReceivedExchangeRequest struct {
	MyListing     models.Listing `json:"my_listing"`
	SenderListing models.Listing `json:"sender_listing"`
}

// ReceivedExchangeRequests lists the user's listings holding a received
// request, paired with the listing offered in exchange.
func ReceivedExchangeRequests(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]ReceivedExchangeRequest, error) {
	var listings []models.Listing
	err := db.WithContext(ctx).
		Where("seller_id = ? AND listing_type = ? AND request_flag = ? AND request_type = ?",
			userID, models.ListingExchange, true, models.RequestReceived).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}

	requests := make([]ReceivedExchangeRequest, 0, len(listings))
	for i := range listings {
		counterpartID, err := listings[i].Counterpart()
		if err != nil {
			continue
		}
		var sender models.Listing
		if err := db.WithContext(ctx).First(&sender, counterpartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		requests = append(requests, ReceivedExchangeRequest{MyListing: listings[i], SenderListing: sender})
	}
	return requests, nil
}

type SentExchangeRequest struct {
	MyListing     models.Listing `json:"my_listing"`
	TargetListing models.Listing `json:"target_listing"`
}

// SentExchangeRequests lists the user's listings holding a sent request,
// paired with the listing they asked for.
func SentExchangeRequests(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]SentExchangeRequest, error) {
	var listings []models.Listing
	err := db.WithContext(ctx).
		Where("seller_id = ? AND listing_type = ? AND request_flag = ? AND request_type = ?",
			userID, models.ListingExchange, true, models.RequestSent).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}

	requests := make([]SentExchangeRequest, 0, len(listings))
	for i := range listings {
		counterpartID, err := listings[i].Counterpart()
		if err != nil {
			continue
		}
		var target models.Listing
		if err := db.WithContext(ctx).First(&target, counterpartID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		requests = append(requests, SentExchangeRequest{MyListing: listings[i], TargetListing: target})
	}
	return requests, nil
}

// AcceptExchangeRequest completes a swap. Only the owner of the receiving
// listing may accept. Both listings move to exchanged, both slots clear, and
// one immutable exchange record is written, all in one transaction.
func AcceptExchangeRequest(ctx context.Context, db *gorm.DB, listingID uint, callerID uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("listing not found")
			}
			return err
		}

		if listing.SellerID != callerID {
			return forbidden("you are not allowed to accept this request")
		}
		if !listing.RequestFlag || listing.RequestType != models.RequestReceived {
			return invalidState("no pending exchange request to accept")
		}

		senderID, err := listing.Counterpart()
		if err != nil {
			return invalidState("no pending exchange request to accept")
		}

		var sender models.Listing
		if err := tx.First(&sender, senderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("sender listing not found")
			}
			return err
		}

		for _, id := range []uint{listingID, senderID} {
			res := tx.Model(&models.Listing{}).
				Where("id = ? AND request_flag = ?", id, true).
				Updates(map[string]any{
					"status":       models.StatusExchanged,
					"request_flag": false,
					"request_type": models.RequestNone,
					"request_id":   "",
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return conflict("exchange request no longer pending")
			}
		}

		record := models.ExchangeRecord{
			User1:    listing.SellerID,
			User2:    sender.SellerID,
			Listing1: listingID,
			Listing2: senderID,
		}
		return tx.Create(&record).Error
	})
}

// RejectExchangeRequest lets the receiving owner decline; both listings
// return to idle.
func RejectExchangeRequest(ctx context.Context, db *gorm.DB, listingID uint, callerID uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("listing not found")
			}
			return err
		}

		if listing.SellerID != callerID {
			return forbidden("you are not allowed to reject this request")
		}
		if !listing.RequestFlag || listing.RequestType != models.RequestReceived {
			return invalidState("no pending exchange request to reject")
		}

		senderID, err := listing.Counterpart()
		if err != nil {
			return invalidState("no pending exchange request to reject")
		}

		return clearExchangePair(tx, listingID, senderID)
	})
}

// CancelExchangeRequest lets the sending owner withdraw; both listings
// return to idle.
func CancelExchangeRequest(ctx context.Context, db *gorm.DB, yourListingID uint, callerID uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var yours models.Listing
		if err := tx.First(&yours, yourListingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("your listing not found")
			}
			return err
		}

		if yours.SellerID != callerID {
			return forbidden("you are not allowed to cancel this request")
		}
		if !yours.RequestFlag || yours.RequestType != models.RequestSent {
			return invalidState("no sent request to cancel")
		}

		targetID, err := yours.Counterpart()
		if err != nil {
			return invalidState("no sent request to cancel")
		}

		return clearExchangePair(tx, yourListingID, targetID)
	})
}

func clearExchangePair(tx *gorm.DB, id1, id2 uint) error {
	for _, id := range []uint{id1, id2} {
		if err := tx.Model(&models.Listing{}).Where("id = ?", id).Updates(clearedSlot).Error; err != nil {
			return err
		}
	}
	return nil
}

// AllExchanges returns the full exchange ledger. Authorization happens at
// the boundary (admin middleware), not here.
func AllExchanges(ctx context.Context, db *gorm.DB) ([]models.ExchangeRecord, error) {
	var records []models.ExchangeRecord
	err := db.WithContext(ctx).Find(&records).Error
	return records, err
}

// UserExchanges lists swaps where the user was either participant.
func UserExchanges(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]models.ExchangeRecord, error) {
	var records []models.ExchangeRecord
	err := db.WithContext(ctx).
		Where("user1 = ? OR user2 = ?", userID, userID).
		Find(&records).Error
	return records, err
}
