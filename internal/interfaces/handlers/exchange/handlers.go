package exchange

import (
	exsvc "goodswap-backend/internal/application/exchange"
	"goodswap-backend/internal/middleware"
	"goodswap-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *exsvc.Service
}

type createSaleRequest struct {
	ListingID string  `json:"listing_id"`
	Amount    float64 `json:"amount"`
}

// CreateSale POST /api/v1/exchange/sales — buyer claims a listing.
func (h *Handlers) CreateSale(c *fiber.Ctx) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req createSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	claim, err := h.Service.CreateClaim(c.Context(), exsvc.CreateClaimInput{
		Kind:      exsvc.KindSale,
		ListingID: listingID,
		ActorID:   actorID,
		Amount:    req.Amount,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Sale transaction created", claim, nil)
}

type createSwapRequest struct {
	ListingID        string  `json:"listing_id"`
	OfferedListingID *string `json:"offered_listing_id"`
}

// CreateSwap POST /api/v1/exchange/swaps — requester proposes a barter.
func (h *Handlers) CreateSwap(c *fiber.Ctx) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req createSwapRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	var offered *uuid.UUID
	if req.OfferedListingID != nil && *req.OfferedListingID != "" {
		id, err := uuid.Parse(*req.OfferedListingID)
		if err != nil {
			return response.Error(c, "Invalid offered_listing_id", fiber.StatusBadRequest, nil)
		}
		offered = &id
	}
	claim, err := h.Service.CreateClaim(c.Context(), exsvc.CreateClaimInput{
		Kind:             exsvc.KindSwap,
		ListingID:        listingID,
		ActorID:          actorID,
		OfferedListingID: offered,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Swap request created", claim, nil)
}

type createDonationRequest struct {
	ListingID      string `json:"listing_id"`
	RecipientOrgID string `json:"recipient_org_id"`
}

// CreateDonation POST /api/v1/exchange/donations — donor offers a listing
// to a verified organization.
func (h *Handlers) CreateDonation(c *fiber.Ctx) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req createDonationRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	listingID, err := uuid.Parse(req.ListingID)
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	recipientID, err := uuid.Parse(req.RecipientOrgID)
	if err != nil {
		return response.Error(c, "Invalid recipient_org_id", fiber.StatusBadRequest, nil)
	}
	claim, err := h.Service.CreateClaim(c.Context(), exsvc.CreateClaimInput{
		Kind:           exsvc.KindDonation,
		ListingID:      listingID,
		ActorID:        actorID,
		RecipientOrgID: recipientID,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Donation created", claim, nil)
}

type resolveRequest struct {
	Status string `json:"status"`
}

// ResolveSale PATCH /api/v1/exchange/sales/:transaction_id
func (h *Handlers) ResolveSale(c *fiber.Ctx) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	transactionID, err := uuid.Parse(c.Params("transaction_id"))
	if err != nil {
		return response.Error(c, "Invalid transaction_id", fiber.StatusBadRequest, nil)
	}
	var req resolveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	claim, err := h.Service.ResolveSale(c.Context(), transactionID, actorID, req.Status)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Sale transaction resolved", claim, nil)
}

// ResolveSwap PATCH /api/v1/exchange/swaps/:swap_id
func (h *Handlers) ResolveSwap(c *fiber.Ctx) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	swapID, err := uuid.Parse(c.Params("swap_id"))
	if err != nil {
		return response.Error(c, "Invalid swap_id", fiber.StatusBadRequest, nil)
	}
	var req resolveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	claim, err := h.Service.ResolveSwap(c.Context(), swapID, actorID, req.Status)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Swap request resolved", claim, nil)
}

// ResolveDonation PATCH /api/v1/exchange/donations/:donation_id
func (h *Handlers) ResolveDonation(c *fiber.Ctx) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	donationID, err := uuid.Parse(c.Params("donation_id"))
	if err != nil {
		return response.Error(c, "Invalid donation_id", fiber.StatusBadRequest, nil)
	}
	var req resolveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	claim, err := h.Service.ResolveDonation(c.Context(), donationID, actorID, req.Status)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Donation resolved", claim, nil)
}

type markSoldRequest struct {
	CounterpartyID string  `json:"counterparty_id"`
	Amount         float64 `json:"amount"`
}

// MarkSold POST /api/v1/listings/:listing_id/mark-sold — owner records an
// off-platform settlement.
func (h *Handlers) MarkSold(c *fiber.Ctx) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	var req markSoldRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	counterpartyID, err := uuid.Parse(req.CounterpartyID)
	if err != nil {
		return response.Error(c, "Invalid counterparty_id", fiber.StatusBadRequest, nil)
	}
	claim, err := h.Service.MarkSold(c.Context(), listingID, actorID, counterpartyID, req.Amount)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Listing marked as settled", claim, nil)
}

// ListingClaims GET /api/v1/listings/:listing_id/claims — claim history.
func (h *Handlers) ListingClaims(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	claims, err := h.Service.ListListingClaims(c.Context(), listingID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Claims fetched successfully", claims, nil)
}
