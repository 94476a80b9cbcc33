package market

import (
	"context"
	"errors"
	"time"

	"github.com/Nehal2048/book-hive/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var clearedSlot = map[string]any{
	"request_flag": false,
	"request_type": models.RequestNone,
	"request_id":   "",
}

// SendBorrowRequest places a borrow request on a listing. The claim is a
// conditional update so two concurrent requests cannot both take the slot.
func SendBorrowRequest(ctx context.Context, db *gorm.DB, targetID uint, borrowerID uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.Listing
		if err := tx.First(&target, targetID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("target listing not found")
			}
			return err
		}

		if target.ListingType != models.ListingBorrow {
			return invalidState("listing must be for borrow")
		}
		if target.RequestFlag {
			return conflict("listing already has pending request")
		}
		if target.Status != models.StatusAvailable {
			return invalidState("listing not available")
		}

		var borrower models.User
		if err := tx.First(&borrower, "id = ?", borrowerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("borrower not found")
			}
			return err
		}

		res := tx.Model(&models.Listing{}).
			Where("id = ? AND request_flag = ? AND status = ?", targetID, false, models.StatusAvailable).
			Updates(map[string]any{
				"request_flag": true,
				"request_type": models.RequestReceived,
				"request_id":   borrowerID.String(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return conflict("listing already has pending request")
		}
		return nil
	})
}

type ReceivedBorrowRequest struct {
	Listing  models.Listing `json:"listing"`
	Borrower UserRef        `json:"borrower"`
}

type UserRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ReceivedBorrowRequests lists the user's borrow listings with a pending
// request, paired with the requesting borrower.
func ReceivedBorrowRequests(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]ReceivedBorrowRequest, error) {
	var listings []models.Listing
	err := db.WithContext(ctx).
		Where("seller_id = ? AND listing_type = ? AND request_flag = ? AND request_type = ?",
			userID, models.ListingBorrow, true, models.RequestReceived).
		Find(&listings).Error
	if err != nil {
		return nil, err
	}

	requests := make([]ReceivedBorrowRequest, 0, len(listings))
	for i := range listings {
		borrowerID, err := listings[i].PendingBorrower()
		if err != nil {
			continue
		}
		var borrower models.User
		if err := db.WithContext(ctx).First(&borrower, "id = ?", borrowerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		requests = append(requests, ReceivedBorrowRequest{
			Listing:  listings[i],
			Borrower: UserRef{ID: borrower.ID, Name: borrower.Name, Email: borrower.Email},
		})
	}
	return requests, nil
}

// SentBorrowRequests lists the borrow listings the user has requested.
func SentBorrowRequests(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]models.Listing, error) {
	var listings []models.Listing
	err := db.WithContext(ctx).
		Where("listing_type = ? AND request_flag = ? AND request_type = ? AND request_id = ?",
			models.ListingBorrow, true, models.RequestReceived, userID.String()).
		Find(&listings).Error
	return listings, err
}

// AcceptBorrowRequest lets the listing owner approve a pending borrow
// request. Creates the loan record and moves the listing to borrowed in one
// transaction. Returns the new borrow id.
func AcceptBorrowRequest(ctx context.Context, db *gorm.DB, listingID uint, lenderID uuid.UUID) (uint, error) {
	var borrowID uint
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("listing not found")
			}
			return err
		}

		if !listing.RequestFlag || listing.RequestType != models.RequestReceived {
			return invalidState("no pending borrow request")
		}
		if listing.SellerID != lenderID {
			return forbidden("only listing owner can accept borrow request")
		}

		borrowerID, err := listing.PendingBorrower()
		if err != nil {
			return invalidState("no borrower information")
		}

		record := models.BorrowRecord{
			Lender:    listing.SellerID,
			Borrower:  borrowerID,
			ListingID: listingID,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		res := tx.Model(&models.Listing{}).
			Where("id = ? AND request_flag = ?", listingID, true).
			Updates(map[string]any{
				"status":       models.StatusBorrowed,
				"request_flag": false,
				"request_type": models.RequestNone,
				"request_id":   "",
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return conflict("borrow request no longer pending")
		}

		borrowID = record.ID
		return nil
	})
	return borrowID, err
}

// RejectBorrowRequest lets the listing owner decline a pending request,
// returning the slot to idle.
func RejectBorrowRequest(ctx context.Context, db *gorm.DB, listingID uint, lenderID uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("listing not found")
			}
			return err
		}

		if !listing.RequestFlag || listing.RequestType != models.RequestReceived {
			return invalidState("no pending borrow request")
		}
		if listing.SellerID != lenderID {
			return forbidden("only listing owner can reject borrow request")
		}

		return tx.Model(&models.Listing{}).Where("id = ?", listingID).Updates(clearedSlot).Error
	})
}

// CancelBorrowRequest lets the borrower withdraw their own pending request.
func CancelBorrowRequest(ctx context.Context, db *gorm.DB, listingID uint, borrowerID uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing models.Listing
		if err := tx.First(&listing, listingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("listing not found")
			}
			return err
		}

		if listing.ListingType != models.ListingBorrow || !listing.RequestFlag {
			return invalidState("no borrow request found")
		}

		pending, err := listing.PendingBorrower()
		if err != nil || pending != borrowerID {
			return forbidden("only the borrower can cancel this request")
		}

		return tx.Model(&models.Listing{}).Where("id = ?", listingID).Updates(clearedSlot).Error
	})
}

// ReturnBorrow closes a loan. The borrow record and the listing reset happen
// in one transaction so a crash cannot strand the listing in borrowed.
func ReturnBorrow(ctx context.Context, db *gorm.DB, borrowID uint, callerID uuid.UUID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.BorrowRecord
		if err := tx.First(&record, borrowID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("borrow record not found")
			}
			return err
		}

		if record.ReturnedFlag {
			return invalidState("book already returned")
		}
		if record.Lender != callerID && record.Borrower != callerID {
			return forbidden("only lender or borrower can return book")
		}

		now := time.Now()
		res := tx.Model(&models.BorrowRecord{}).
			Where("id = ? AND returned_flag = ?", borrowID, false).
			Updates(map[string]any{
				"return_date":   now,
				"returned_flag": true,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return invalidState("book already returned")
		}

		return tx.Model(&models.Listing{}).
			Where("id = ?", record.ListingID).
			Updates(map[string]any{
				"status":       models.StatusAvailable,
				"request_flag": false,
				"request_type": models.RequestNone,
				"request_id":   "",
			}).Error
	})
}

type ActiveBorrowsResult struct {
	Borrowing []models.BorrowRecord `json:"borrowing"`
	Lending   []models.BorrowRecord `json:"lending"`
}

// ActiveBorrows lists open loans where the user is borrower or lender.
func ActiveBorrows(ctx context.Context, db *gorm.DB, userID uuid.UUID) (ActiveBorrowsResult, error) {
	var result ActiveBorrowsResult
	err := db.WithContext(ctx).
		Where("borrower = ? AND returned_flag = ?", userID, false).
		Find(&result.Borrowing).Error
	if err != nil {
		return result, err
	}
	err = db.WithContext(ctx).
		Where("lender = ? AND returned_flag = ?", userID, false).
		Find(&result.Lending).Error
	return result, err
}

// BorrowHistory lists every loan involving the user, open or closed.
func BorrowHistory(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]models.BorrowRecord, error) {
	var records []models.BorrowRecord
	err := db.WithContext(ctx).
		Where("lender = ? OR borrower = ?", userID, userID).
		Find(&records).Error
	return records, err
}
