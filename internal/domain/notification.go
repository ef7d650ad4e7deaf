package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Notification event types emitted by the exchange coordinator.
const (
	EventClaimCreated  = "claim_created"
	EventClaimResolved = "claim_resolved"
)

// Notification is one delivered (or at least attempted) event record
// addressed to a user. Data carries the claim-specific payload as JSON.
type Notification struct {
	NotificationID uuid.UUID      `gorm:"column:notification_id;type:uuid;primaryKey" json:"notification_id"`
	RecipientID    uuid.UUID      `gorm:"column:recipient_id;type:uuid;not null;index" json:"recipient_id"`
	EventType      string         `gorm:"column:event_type;type:varchar(30);not null" json:"event_type"`
	Title          string         `gorm:"column:title;not null" json:"title"`
	Body           string         `gorm:"column:body" json:"body"`
	ClaimID        uuid.UUID      `gorm:"column:claim_id;type:uuid;not null" json:"claim_id"`
	ClaimKind      string         `gorm:"column:claim_kind;type:varchar(20);not null" json:"claim_kind"`
	Data           datatypes.JSON `gorm:"column:data;type:json" json:"data"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.NotificationID == uuid.Nil {
		n.NotificationID = uuid.New()
	}
	return nil
}
