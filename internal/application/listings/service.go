package listings

import (
	"context"
	"errors"

	"goodswap-backend/internal/domain"
	"goodswap-backend/internal/pkg/apperrors"
	"goodswap-backend/internal/pkg/geo"
	"goodswap-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service is the listing store: the single owner of listing rows and the
// only place listing status is written. Claims go through the exchange
// coordinator, which drives status via the compare-and-swap transition.
type Service struct {
	DB *gorm.DB
}

type CreateListingInput struct {
	OwnerID     uuid.UUID
	Category    string
	Modality    string
	Price       float64
	Condition   string
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	ImageURLs   []string
}

func (s *Service) Create(ctx context.Context, in CreateListingInput) (*domain.Listing, error) {
	if in.OwnerID == uuid.Nil {
		return nil, apperrors.NewInvalidArgument("owner_id is required")
	}
	if !validation.IsValidCategory(in.Category) {
		return nil, apperrors.NewInvalidArgument("Unknown category: " + in.Category)
	}
	if !validation.IsValidModality(in.Modality) {
		return nil, apperrors.NewInvalidArgument("Unknown modality: " + in.Modality)
	}
	if !geo.ValidLatitude(in.Latitude) || !geo.ValidLongitude(in.Longitude) {
		return nil, apperrors.NewInvalidArgument("Invalid coordinates")
	}
	if in.Title == "" {
		return nil, apperrors.NewInvalidArgument("title is required")
	}

	price := in.Price
	if in.Modality == domain.ModalitySale {
		if price <= 0 {
			return nil, apperrors.NewInvalidArgument("Sale listings require a price greater than zero")
		}
	} else {
		// Recorded as zero, never null, so aggregation stays type-stable.
		price = 0
	}

	listing := &domain.Listing{
		OwnerID:     in.OwnerID,
		Category:    in.Category,
		Modality:    in.Modality,
		Price:       price,
		Condition:   in.Condition,
		Title:       in.Title,
		Description: in.Description,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Status:      domain.ListingAvailable,
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(listing).Error; err != nil {
			return err
		}
		for i, url := range in.ImageURLs {
			img := domain.ListingImage{ListingID: listing.ListingID, Position: i, URL: url}
			if err := tx.Create(&img).Error; err != nil {
				return err
			}
			listing.Images = append(listing.Images, img)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *Service) Get(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	var listing domain.Listing
	err := s.DB.WithContext(ctx).Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("listing_id = ?", listingID).First(&listing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Listing not found")
		}
		return nil, err
	}
	return &listing, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Listing, error) {
	var listings []domain.Listing
	err := s.DB.WithContext(ctx).Preload("Images").
		Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// UpdateAttributesInput patches owner-editable fields. Status is not here
// on purpose: it only moves through TransitionStatus.
type UpdateAttributesInput struct {
	Price       *float64
	Condition   *string
	Title       *string
	Description *string
}

func (s *Service) UpdateAttributes(ctx context.Context, listingID, ownerID uuid.UUID, in UpdateAttributesInput) (*domain.Listing, error) {
	listing, err := s.Get(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != ownerID {
		return nil, apperrors.NewForbidden("Only the listing owner can edit it")
	}

	updates := map[string]interface{}{}
	if in.Price != nil {
		if listing.Modality != domain.ModalitySale {
			return nil, apperrors.NewInvalidArgument("Price applies only to sale listings")
		}
		if *in.Price <= 0 {
			return nil, apperrors.NewInvalidArgument("Invalid price")
		}
		updates["price"] = *in.Price
	}
	if in.Condition != nil {
		updates["condition"] = *in.Condition
	}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, apperrors.NewInvalidArgument("title cannot be empty")
		}
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if len(updates) == 0 {
		return nil, apperrors.NewInvalidArgument("No valid changes provided")
	}

	if err := s.DB.WithContext(ctx).Model(listing).Updates(updates).Error; err != nil {
		return nil, err
	}
	return s.Get(ctx, listingID)
}

// TransitionStatus moves a listing from one status to another with
// compare-and-swap semantics: the update applies only while the current
// status equals from, so two concurrent claims can never both succeed.
func (s *Service) TransitionStatus(ctx context.Context, listingID uuid.UUID, from, to string) (*domain.Listing, error) {
	if err := TransitionStatusTx(s.DB.WithContext(ctx), listingID, from, to); err != nil {
		return nil, err
	}
	return s.Get(ctx, listingID)
}

// TransitionStatusTx is the CAS transition against an arbitrary handle,
// so the exchange coordinator can run it inside its claim transaction.
// Returns Conflict when the listing exists but is not in the expected
// status, NotFound when it does not exist.
func TransitionStatusTx(tx *gorm.DB, listingID uuid.UUID, from, to string) error {
	if !validStatus(from) || !validStatus(to) {
		return apperrors.NewInvalidArgument("Unknown listing status")
	}
	res := tx.Model(&domain.Listing{}).
		Where("listing_id = ? AND status = ?", listingID, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := tx.Model(&domain.Listing{}).Where("listing_id = ?", listingID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.NewNotFound("Listing not found")
		}
		return apperrors.NewConflict("Listing is not " + from)
	}
	return nil
}

// Delete removes a listing and its image references.
func (s *Service) Delete(ctx context.Context, listingID, ownerID uuid.UUID) error {
	listing, err := s.Get(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.OwnerID != ownerID {
		return apperrors.NewForbidden("Only the listing owner can delete it")
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", listingID).Delete(&domain.ListingImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Listing{}, "listing_id = ?", listingID).Error
	})
}

func validStatus(s string) bool {
	switch s {
	case domain.ListingAvailable, domain.ListingPending, domain.ListingSold, domain.ListingCompleted:
		return true
	}
	return false
}
