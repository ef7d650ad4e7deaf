package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale transaction statuses. "completed" and "cancelled" are terminal.
const (
	SalePending   = "pending"
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
)

// SaleTransaction is one purchase claim against a listing. SellerID is
// denormalized from the listing owner at creation time. Amount is always
// recorded (zero for non-sale modalities) so sums stay type-stable.
type SaleTransaction struct {
	TransactionID uuid.UUID      `gorm:"column:transaction_id;type:uuid;primaryKey" json:"transaction_id"`
	ListingID     uuid.UUID      `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	SellerID      uuid.UUID      `gorm:"column:seller_id;type:uuid;not null" json:"seller_id"`
	BuyerID       uuid.UUID      `gorm:"column:buyer_id;type:uuid;not null" json:"buyer_id"`
	Amount        float64        `gorm:"column:amount;type:decimal(18,2);not null;default:0" json:"amount"`
	Status        string         `gorm:"column:status;type:varchar(20);not null;default:pending" json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SaleTransaction) TableName() string {
	return "sale_transactions"
}

func (t *SaleTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.TransactionID == uuid.Nil {
		t.TransactionID = uuid.New()
	}
	return nil
}

// Terminal reports whether the transaction can no longer change status.
func (t *SaleTransaction) Terminal() bool {
	return t.Status == SaleCompleted || t.Status == SaleCancelled
}
