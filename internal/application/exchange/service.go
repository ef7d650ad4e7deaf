package exchange

import (
	"context"
	"errors"
	"fmt"

	"goodswap-backend/internal/application/listings"
	"goodswap-backend/internal/application/notifications"
	"goodswap-backend/internal/domain"
	"goodswap-backend/internal/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClaimKind tags the three claim variants.
type ClaimKind string

const (
	KindSale     ClaimKind = "sale"
	KindSwap     ClaimKind = "swap"
	KindDonation ClaimKind = "donation"
)

// Claim is the tagged-variant view of one disposition of a listing.
// Exactly one of Sale/Swap/Donation is set, matching Kind.
type Claim struct {
	Kind     ClaimKind                `json:"kind"`
	Sale     *domain.SaleTransaction `json:"sale,omitempty"`
	Swap     *domain.SwapRequest     `json:"swap,omitempty"`
	Donation *domain.Donation        `json:"donation,omitempty"`
}

// ID returns the underlying claim row id.
func (c *Claim) ID() uuid.UUID {
	switch c.Kind {
	case KindSale:
		return c.Sale.TransactionID
	case KindSwap:
		return c.Swap.SwapID
	case KindDonation:
		return c.Donation.DonationID
	}
	return uuid.Nil
}

// Status returns the underlying claim status.
func (c *Claim) Status() string {
	switch c.Kind {
	case KindSale:
		return c.Sale.Status
	case KindSwap:
		return c.Swap.Status
	case KindDonation:
		return c.Donation.Status
	}
	return ""
}

// OrgRegistry answers whether a user currently holds verified recipient
// organization status. The coordinator only consumes the answer.
type OrgRegistry interface {
	IsVerifiedRecipient(ctx context.Context, userID uuid.UUID) (bool, error)
}

// GormOrgRegistry reads verification straight from the users table.
type GormOrgRegistry struct {
	DB *gorm.DB
}

func (r *GormOrgRegistry) IsVerifiedRecipient(ctx context.Context, userID uuid.UUID) (bool, error) {
	var u domain.User
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.Role == domain.RoleNgo && u.NgoVerified, nil
}

// Service is the exchange coordinator. It owns every listing status
// transition tied to a claim: claim write and listing compare-and-swap
// always commit together or not at all.
type Service struct {
	DB       *gorm.DB
	Registry OrgRegistry
	Notifier notifications.Emitter
}

// CreateClaimInput carries the modality-specific payload for one claim
// attempt. Amount is read for sale claims, OfferedListingID for swaps,
// RecipientOrgID for donations.
type CreateClaimInput struct {
	Kind             ClaimKind
	ListingID        uuid.UUID
	ActorID          uuid.UUID
	Amount           float64
	OfferedListingID *uuid.UUID
	RecipientOrgID   uuid.UUID
}

// CreateClaim validates the listing and actor, persists the claim as
// pending, and CAS-transitions the listing available -> pending in the
// same transaction. Two concurrent claims on one listing therefore end as
// exactly one success and one Conflict.
func (s *Service) CreateClaim(ctx context.Context, in CreateClaimInput) (*Claim, error) {
	switch in.Kind {
	case KindSale, KindSwap, KindDonation:
	default:
		return nil, apperrors.NewInvalidArgument(fmt.Sprintf("Unknown claim kind: %q", in.Kind))
	}
	if in.ActorID == uuid.Nil {
		return nil, apperrors.NewInvalidArgument("actor id is required")
	}
	if in.Kind == KindSale && in.Amount <= 0 {
		return nil, apperrors.NewInvalidArgument("Sale amount must be greater than zero")
	}
	if in.Kind == KindDonation {
		if in.RecipientOrgID == uuid.Nil {
			return nil, apperrors.NewInvalidArgument("recipient_org_id is required")
		}
		verified, err := s.Registry.IsVerifiedRecipient(ctx, in.RecipientOrgID)
		if err != nil {
			return nil, err
		}
		if !verified {
			return nil, apperrors.NewForbidden("Recipient is not a verified organization")
		}
	}

	var claim *Claim
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		if err := tx.Where("listing_id = ?", in.ListingID).First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("Listing not found")
			}
			return err
		}
		if listing.OwnerID == in.ActorID {
			return apperrors.NewForbidden("Cannot claim your own listing")
		}
		if in.Kind == KindSwap && in.OfferedListingID != nil {
			var offered domain.Listing
			if err := tx.Where("listing_id = ?", *in.OfferedListingID).First(&offered).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.NewNotFound("Offered listing not found")
				}
				return err
			}
			if offered.OwnerID != in.ActorID {
				return apperrors.NewForbidden("Offered listing does not belong to the requester")
			}
		}

		// The CAS is the double-claim guard: it fails with Conflict when a
		// concurrent claim got there first.
		if err := listings.TransitionStatusTx(tx, in.ListingID, domain.ListingAvailable, domain.ListingPending); err != nil {
			return err
		}

		switch in.Kind {
		case KindSale:
			sale := &domain.SaleTransaction{
				ListingID: listing.ListingID,
				SellerID:  listing.OwnerID,
				BuyerID:   in.ActorID,
				Amount:    in.Amount,
				Status:    domain.SalePending,
			}
			if err := tx.Create(sale).Error; err != nil {
				return err
			}
			claim = &Claim{Kind: KindSale, Sale: sale}
		case KindSwap:
			swap := &domain.SwapRequest{
				ListingID:        listing.ListingID,
				RequesterID:      in.ActorID,
				OfferedListingID: in.OfferedListingID,
				Status:           domain.SwapPending,
			}
			if err := tx.Create(swap).Error; err != nil {
				return err
			}
			claim = &Claim{Kind: KindSwap, Swap: swap}
		case KindDonation:
			donation := &domain.Donation{
				ListingID:      listing.ListingID,
				DonorID:        in.ActorID,
				RecipientOrgID: in.RecipientOrgID,
				Status:         domain.DonationPending,
			}
			if err := tx.Create(donation).Error; err != nil {
				return err
			}
			claim = &Claim{Kind: KindDonation, Donation: donation}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyCreated(ctx, claim, in)
	return claim, nil
}

// notifyCreated addresses the counterparty of a fresh claim. Runs after
// commit; the emitter swallows delivery failures.
func (s *Service) notifyCreated(ctx context.Context, claim *Claim, in CreateClaimInput) {
	if s.Notifier == nil {
		return
	}
	var recipient uuid.UUID
	var body string
	switch claim.Kind {
	case KindSale:
		recipient = claim.Sale.SellerID
		body = fmt.Sprintf("A buyer offered %.2f for your listing.", claim.Sale.Amount)
	case KindSwap:
		// The swap decision belongs to the listing owner, stored as the
		// sale seller would be; resolve it from the listing.
		var listing domain.Listing
		if err := s.DB.WithContext(ctx).Where("listing_id = ?", in.ListingID).First(&listing).Error; err != nil {
			return
		}
		recipient = listing.OwnerID
		body = "Someone proposed a swap for your listing."
	case KindDonation:
		recipient = claim.Donation.RecipientOrgID
		body = "A donor wants to give you an item."
	}
	s.Notifier.Emit(ctx, notifications.Event{
		RecipientID: recipient,
		EventType:   domain.EventClaimCreated,
		Title:       "New " + string(claim.Kind) + " request",
		Body:        body,
		ClaimID:     claim.ID(),
		ClaimKind:   string(claim.Kind),
		Data:        map[string]interface{}{"listing_id": in.ListingID.String()},
	})
}

// ResolveSale moves a pending sale transaction to completed or cancelled.
// Buyer or seller may resolve. Completion drives the listing to sold;
// cancellation returns it to available.
func (s *Service) ResolveSale(ctx context.Context, transactionID, actorID uuid.UUID, target string) (*Claim, error) {
	if target != domain.SaleCompleted && target != domain.SaleCancelled {
		return nil, apperrors.NewInvalidArgument(fmt.Sprintf("Unknown sale resolution: %q", target))
	}
	var sale domain.SaleTransaction
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("transaction_id = ?", transactionID).First(&sale).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("Transaction not found")
			}
			return err
		}
		if actorID != sale.BuyerID && actorID != sale.SellerID {
			return apperrors.NewForbidden("Only the buyer or seller can resolve this transaction")
		}
		if sale.Terminal() {
			return apperrors.NewConflict("Transaction is already " + sale.Status)
		}

		listingTarget := domain.ListingSold
		if target == domain.SaleCancelled {
			listingTarget = domain.ListingAvailable
		}
		if err := listings.TransitionStatusTx(tx, sale.ListingID, domain.ListingPending, listingTarget); err != nil {
			return err
		}
		sale.Status = target
		return tx.Save(&sale).Error
	})
	if err != nil {
		return nil, err
	}

	claim := &Claim{Kind: KindSale, Sale: &sale}
	s.notifyResolved(ctx, claim, actorID, otherParty(actorID, sale.BuyerID, sale.SellerID))
	return claim, nil
}

// ResolveSwap accepts or rejects a pending swap request. Only the listing
// owner decides. Acceptance consumes the listing (completed); rejection
// returns it to available.
func (s *Service) ResolveSwap(ctx context.Context, swapID, actorID uuid.UUID, target string) (*Claim, error) {
	if target != domain.SwapAccepted && target != domain.SwapRejected {
		return nil, apperrors.NewInvalidArgument(fmt.Sprintf("Unknown swap resolution: %q", target))
	}
	var swap domain.SwapRequest
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("swap_id = ?", swapID).First(&swap).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("Swap request not found")
			}
			return err
		}
		var listing domain.Listing
		if err := tx.Where("listing_id = ?", swap.ListingID).First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("Listing not found")
			}
			return err
		}
		if actorID != listing.OwnerID {
			return apperrors.NewForbidden("Only the listing owner can resolve a swap request")
		}
		if swap.Terminal() {
			return apperrors.NewConflict("Swap request is already " + swap.Status)
		}

		listingTarget := domain.ListingCompleted
		if target == domain.SwapRejected {
			listingTarget = domain.ListingAvailable
		}
		if err := listings.TransitionStatusTx(tx, swap.ListingID, domain.ListingPending, listingTarget); err != nil {
			return err
		}
		swap.Status = target
		return tx.Save(&swap).Error
	})
	if err != nil {
		return nil, err
	}

	claim := &Claim{Kind: KindSwap, Swap: &swap}
	s.notifyResolved(ctx, claim, actorID, swap.RequesterID)
	return claim, nil
}

// ResolveDonation advances a donation. The recipient organization accepts
// and completes; donor or recipient may cancel. Completion drives the
// listing to completed, cancellation back to available; acceptance alone
// leaves the listing pending.
func (s *Service) ResolveDonation(ctx context.Context, donationID, actorID uuid.UUID, target string) (*Claim, error) {
	var donation domain.Donation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("donation_id = ?", donationID).First(&donation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("Donation not found")
			}
			return err
		}

		switch target {
		case domain.DonationAccepted, domain.DonationCompleted:
			if actorID != donation.RecipientOrgID {
				return apperrors.NewForbidden("Only the recipient organization can accept or complete a donation")
			}
		case domain.DonationCancelled:
			if actorID != donation.DonorID && actorID != donation.RecipientOrgID {
				return apperrors.NewForbidden("Only the donor or recipient can cancel a donation")
			}
		default:
			return apperrors.NewInvalidArgument(fmt.Sprintf("Unknown donation resolution: %q", target))
		}

		if donation.Terminal() {
			return apperrors.NewConflict("Donation is already " + donation.Status)
		}
		if target == domain.DonationAccepted && donation.Status != domain.DonationPending {
			return apperrors.NewConflict("Donation is already " + donation.Status)
		}

		switch target {
		case domain.DonationCompleted:
			if err := listings.TransitionStatusTx(tx, donation.ListingID, domain.ListingPending, domain.ListingCompleted); err != nil {
				return err
			}
		case domain.DonationCancelled:
			if err := listings.TransitionStatusTx(tx, donation.ListingID, domain.ListingPending, domain.ListingAvailable); err != nil {
				return err
			}
		}
		donation.Status = target
		return tx.Save(&donation).Error
	})
	if err != nil {
		return nil, err
	}

	claim := &Claim{Kind: KindDonation, Donation: &donation}
	s.notifyResolved(ctx, claim, actorID, otherParty(actorID, donation.DonorID, donation.RecipientOrgID))
	return claim, nil
}

// MarkSold is the owner's direct assertion that an exchange settled off
// platform. It synthesizes an already-completed sale transaction and
// drives the listing straight from available to its terminal status, with
// the same checks as a normal claim (no self-dealing, must be available).
func (s *Service) MarkSold(ctx context.Context, listingID, ownerID, counterpartyID uuid.UUID, amount float64) (*Claim, error) {
	if counterpartyID == uuid.Nil {
		return nil, apperrors.NewInvalidArgument("counterparty id is required")
	}
	var sale domain.SaleTransaction
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var listing domain.Listing
		if err := tx.Where("listing_id = ?", listingID).First(&listing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NewNotFound("Listing not found")
			}
			return err
		}
		if listing.OwnerID != ownerID {
			return apperrors.NewForbidden("Only the listing owner can mark it sold")
		}
		if counterpartyID == ownerID {
			return apperrors.NewForbidden("Counterparty cannot be the listing owner")
		}

		recorded := 0.0
		target := domain.ListingCompleted
		if listing.Modality == domain.ModalitySale {
			if amount <= 0 {
				return apperrors.NewInvalidArgument("Sale amount must be greater than zero")
			}
			recorded = amount
			target = domain.ListingSold
		}

		if err := listings.TransitionStatusTx(tx, listingID, domain.ListingAvailable, target); err != nil {
			return err
		}
		sale = domain.SaleTransaction{
			ListingID: listing.ListingID,
			SellerID:  ownerID,
			BuyerID:   counterpartyID,
			Amount:    recorded,
			Status:    domain.SaleCompleted,
		}
		return tx.Create(&sale).Error
	})
	if err != nil {
		return nil, err
	}

	claim := &Claim{Kind: KindSale, Sale: &sale}
	s.notifyResolved(ctx, claim, ownerID, counterpartyID)
	return claim, nil
}

// ListListingClaims returns the claim history for a listing across all
// three kinds, for the owner's record.
func (s *Service) ListListingClaims(ctx context.Context, listingID uuid.UUID) ([]Claim, error) {
	var sales []domain.SaleTransaction
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Order("created_at DESC").Find(&sales).Error; err != nil {
		return nil, err
	}
	var swaps []domain.SwapRequest
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Order("created_at DESC").Find(&swaps).Error; err != nil {
		return nil, err
	}
	var donations []domain.Donation
	if err := s.DB.WithContext(ctx).Where("listing_id = ?", listingID).Order("created_at DESC").Find(&donations).Error; err != nil {
		return nil, err
	}

	claims := make([]Claim, 0, len(sales)+len(swaps)+len(donations))
	for i := range sales {
		claims = append(claims, Claim{Kind: KindSale, Sale: &sales[i]})
	}
	for i := range swaps {
		claims = append(claims, Claim{Kind: KindSwap, Swap: &swaps[i]})
	}
	for i := range donations {
		claims = append(claims, Claim{Kind: KindDonation, Donation: &donations[i]})
	}
	return claims, nil
}

func (s *Service) notifyResolved(ctx context.Context, claim *Claim, actorID, recipientID uuid.UUID) {
	if s.Notifier == nil || recipientID == uuid.Nil {
		return
	}
	s.Notifier.Emit(ctx, notifications.Event{
		RecipientID: recipientID,
		EventType:   domain.EventClaimResolved,
		Title:       "Your " + string(claim.Kind) + " request was " + claim.Status(),
		Body:        fmt.Sprintf("The %s is now %s.", claim.Kind, claim.Status()),
		ClaimID:     claim.ID(),
		ClaimKind:   string(claim.Kind),
		Data:        map[string]interface{}{"resolved_by": actorID.String(), "status": claim.Status()},
	})
}

// otherParty picks whichever of a/b is not the actor.
func otherParty(actor, a, b uuid.UUID) uuid.UUID {
	if actor == a {
		return b
	}
	return a
}
