package models

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UserType string

const (
	UserRegular UserType = "regular"
	UserAdmin   UserType = "admin"
)

type User struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string          `gorm:"size:50;not null" json:"name"`
	Email     string          `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string          `gorm:"size:255" json:"-"`
	Balance   decimal.Decimal `gorm:"not null" json:"balance"`
	UserType  UserType        `gorm:"size:10;not null;default:regular" json:"user_type"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type ListingType string

const (
	ListingSale     ListingType = "sale"
	ListingBorrow   ListingType = "borrow"
	ListingExchange ListingType = "exchange"
)

type ListingStatus string

const (
	StatusAvailable ListingStatus = "available"
	StatusBorrowed  ListingStatus = "borrowed"
	StatusSold      ListingStatus = "sold"
	StatusExchanged ListingStatus = "exchanged"
)

type RequestType string

const (
	RequestNone     RequestType = ""
	RequestSent     RequestType = "sent"
	RequestReceived RequestType = "received"
)

// Listing is one unit of inventory offered under one of the three modes.
// The request slot (RequestFlag/RequestType/RequestID) tracks at most one
// outstanding borrow or exchange proposal. RequestID holds a borrower uuid
// for borrow listings and a counterpart listing id for exchange listings;
// use PendingBorrower / Counterpart instead of reading it directly.
type Listing struct {
	gorm.Model
	SellerID    uuid.UUID       `gorm:"type:uuid;index;not null" json:"seller_id"`
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	ListingType ListingType     `gorm:"size:10;index;not null" json:"listing_type"`
	Status      ListingStatus   `gorm:"size:10;index;not null;default:available" json:"status"`
	Price       decimal.Decimal `json:"price"`
	RequestFlag bool            `gorm:"not null;default:false" json:"request_flag"`
	RequestType RequestType     `gorm:"size:10" json:"request_type"`
	RequestID   string          `gorm:"size:36" json:"request_id"`
}

var (
	ErrNoBorrowRequest   = errors.New("listing has no pending borrow request")
	ErrNoExchangeRequest = errors.New("listing has no exchange request")
)

// PendingBorrower returns the borrower recorded in the request slot of a
// borrow listing.
func (l *Listing) PendingBorrower() (uuid.UUID, error) {
	if l.ListingType != ListingBorrow || !l.RequestFlag || l.RequestID == "" {
		return uuid.Nil, ErrNoBorrowRequest
	}
	return uuid.Parse(l.RequestID)
}

// Counterpart returns the other listing recorded in the request slot of an
// exchange listing.
func (l *Listing) Counterpart() (uint, error) {
	if l.ListingType != ListingExchange || !l.RequestFlag || l.RequestID == "" {
		return 0, ErrNoExchangeRequest
	}
	id, err := strconv.ParseUint(l.RequestID, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// BorrowRecord is the ledger entry for one loan, open until returned.
type BorrowRecord struct {
	gorm.Model
	Lender       uuid.UUID  `gorm:"type:uuid;index;not null" json:"lender"`
	Borrower     uuid.UUID  `gorm:"type:uuid;index;not null" json:"borrower"`
	ListingID    uint       `gorm:"index;not null" json:"listing_id"`
	BorrowDate   time.Time  `gorm:"autoCreateTime" json:"borrow_date"`
	ReturnDate   *time.Time `json:"return_date"`
	ReturnedFlag bool       `gorm:"not null;default:false" json:"returned_flag"`
}

func (BorrowRecord) TableName() string { return "borrow" }

// ExchangeRecord captures one completed swap. Never updated or deleted.
type ExchangeRecord struct {
	gorm.Model
	User1    uuid.UUID `gorm:"type:uuid;index;not null" json:"user1"`
	User2    uuid.UUID `gorm:"type:uuid;index;not null" json:"user2"`
	Listing1 uint      `gorm:"not null" json:"listing1"`
	Listing2 uint      `gorm:"not null" json:"listing2"`
}

func (ExchangeRecord) TableName() string { return "exchanges" }

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCancelled OrderStatus = "cancelled"
)

type Order struct {
	gorm.Model
	BuyerID       uuid.UUID   `gorm:"type:uuid;index;not null" json:"buyer_id"`
	Status        OrderStatus `gorm:"size:10;not null;default:pending" json:"status"`
	OrderDate     time.Time   `gorm:"autoCreateTime" json:"order_date"`
	TransactionID *uint       `json:"transaction_id"`
}

// OrderedItem links one order to one listing. The unique index on ListingID
// enforces the one-order-per-listing rule at the schema level.
type OrderedItem struct {
	gorm.Model
	OrderID   uint `gorm:"index;not null" json:"order_id"`
	ListingID uint `gorm:"uniqueIndex;not null" json:"listing_id"`
}

type TransactionStatus string

const (
	TxPending TransactionStatus = "pending"
	TxSuccess TransactionStatus = "success"
	TxFailed  TransactionStatus = "failed"
)

type Transaction struct {
	gorm.Model
	OrderID   uint              `gorm:"index;not null" json:"order_id"`
	BuyerID   uuid.UUID         `gorm:"type:uuid;not null" json:"buyer_id"`
	SellerID  uuid.UUID         `gorm:"type:uuid;not null" json:"seller_id"`
	ListingID uint              `gorm:"not null" json:"listing_id"`
	Status    TransactionStatus `gorm:"size:10;not null;default:pending" json:"status"`
}
