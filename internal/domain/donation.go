package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Donation statuses. "accepted" is an intermediate step (organization has
// agreed to receive, handover not confirmed); "completed" and "cancelled"
// are terminal.
const (
	DonationPending   = "pending"
	DonationAccepted  = "accepted"
	DonationCompleted = "completed"
	DonationCancelled = "cancelled"
)

// Donation is a claim giving a listing to a verified recipient organization.
type Donation struct {
	DonationID     uuid.UUID      `gorm:"column:donation_id;type:uuid;primaryKey" json:"donation_id"`
	ListingID      uuid.UUID      `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	DonorID        uuid.UUID      `gorm:"column:donor_id;type:uuid;not null" json:"donor_id"`
	RecipientOrgID uuid.UUID      `gorm:"column:recipient_org_id;type:uuid;not null" json:"recipient_org_id"`
	Status         string         `gorm:"column:status;type:varchar(20);not null;default:pending" json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Donation) TableName() string {
	return "donations"
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.DonationID == uuid.Nil {
		d.DonationID = uuid.New()
	}
	return nil
}

// Terminal reports whether the donation can no longer change status.
func (d *Donation) Terminal() bool {
	return d.Status == DonationCompleted || d.Status == DonationCancelled
}
