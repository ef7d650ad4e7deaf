package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Listing categories.
const (
	CategoryClothing   = "clothing"
	CategoryBooks      = "books"
	CategoryProvisions = "provisions"
)

// Listing modalities: how the owner wants to dispose of the item.
const (
	ModalitySale     = "sale"
	ModalityDonation = "donation"
	ModalitySwap     = "swap"
)

// Listing statuses. "pending" means a claim currently holds the listing;
// "sold" and "completed" are terminal.
const (
	ListingAvailable = "available"
	ListingPending   = "pending"
	ListingSold      = "sold"
	ListingCompleted = "completed"
)

type Listing struct {
	ListingID   uuid.UUID      `gorm:"column:listing_id;type:uuid;primaryKey" json:"listing_id"`
	OwnerID     uuid.UUID      `gorm:"column:owner_id;type:uuid;not null;index" json:"owner_id"`
	Category    string         `gorm:"column:category;type:varchar(20);not null" json:"category"`
	Modality    string         `gorm:"column:modality;type:varchar(20);not null" json:"modality"`
	Price       float64        `gorm:"column:price;type:decimal(18,2);not null;default:0" json:"price"`
	Condition   string         `gorm:"column:condition;not null" json:"condition"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	Latitude    float64        `gorm:"column:latitude;not null" json:"latitude"`
	Longitude   float64        `gorm:"column:longitude;not null" json:"longitude"`
	Status      string         `gorm:"column:status;type:varchar(20);not null;default:available" json:"status"`
	Images      []ListingImage `gorm:"foreignKey:ListingID;references:ListingID" json:"images"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Listing) TableName() string {
	return "listings"
}

func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ListingID == uuid.Nil {
		l.ListingID = uuid.New()
	}
	return nil
}

// Terminal reports whether no further claims may be made against the listing.
func (l *Listing) Terminal() bool {
	return l.Status == ListingSold || l.Status == ListingCompleted
}

// ListingImage is one ordered image reference attached to a listing.
// Rows are removed when the owning listing is deleted.
type ListingImage struct {
	ImageID   uuid.UUID `gorm:"column:image_id;type:uuid;primaryKey" json:"image_id"`
	ListingID uuid.UUID `gorm:"column:listing_id;type:uuid;not null;index" json:"listing_id"`
	Position  int       `gorm:"column:position;not null" json:"position"`
	URL       string    `gorm:"column:url;not null" json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

func (ListingImage) TableName() string {
	return "listing_images"
}

func (i *ListingImage) BeforeCreate(tx *gorm.DB) error {
	if i.ImageID == uuid.Nil {
		i.ImageID = uuid.New()
	}
	return nil
}
