package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Swap request statuses. "accepted" and "rejected" are terminal; the
// accept/reject decision belongs to the listing owner.
const (
	SwapPending  = "pending"
	SwapAccepted = "accepted"
	SwapRejected = "rejected"
)

// SwapRequest is a barter claim against a listing, optionally carrying a
// counter-offered listing owned by the requester.
type SwapRequest struct {
	SwapID           uuid.UUID      `gorm:"column:swap_id;type:uuid;primaryKey" json:"swap_id"`
	ListingID        uuid.UUID      `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	RequesterID      uuid.UUID      `gorm:"column:requester_id;type:uuid;not null" json:"requester_id"`
	OfferedListingID *uuid.UUID     `gorm:"column:offered_listing_id;type:uuid" json:"offered_listing_id"`
	Status           string         `gorm:"column:status;type:varchar(20);not null;default:pending" json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

func (SwapRequest) TableName() string {
	return "swap_requests"
}

func (s *SwapRequest) BeforeCreate(tx *gorm.DB) error {
	if s.SwapID == uuid.Nil {
		s.SwapID = uuid.New()
	}
	return nil
}

// Terminal reports whether the swap request can no longer change status.
func (s *SwapRequest) Terminal() bool {
	return s.Status == SwapAccepted || s.Status == SwapRejected
}
