package listings

import (
	listsvc "goodswap-backend/internal/application/listings"
	"goodswap-backend/internal/middleware"
	"goodswap-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *listsvc.Service
}

type createListingRequest struct {
	Category    string   `json:"category"`
	Modality    string   `json:"modality"`
	Price       float64  `json:"price"`
	Condition   string   `json:"condition"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Images      []string `json:"images"`
}

// CreateListing POST /api/v1/listings — 201 with the created listing.
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req createListingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if req.Latitude == nil || req.Longitude == nil {
		return response.Error(c, "latitude and longitude are required", fiber.StatusBadRequest, nil)
	}

	listing, err := h.Service.Create(c.Context(), listsvc.CreateListingInput{
		OwnerID:     actorID,
		Category:    req.Category,
		Modality:    req.Modality,
		Price:       req.Price,
		Condition:   req.Condition,
		Title:       req.Title,
		Description: req.Description,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		ImageURLs:   req.Images,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessCreated(c, "Listing created successfully", listing, nil)
}

// GetListing GET /api/v1/listings/:listing_id
func (h *Handlers) GetListing(c *fiber.Ctx) error {
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	listing, err := h.Service.Get(c.Context(), listingID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Listing fetched successfully", listing, nil)
}

// MyListings GET /api/v1/listings/mine
func (h *Handlers) MyListings(c *fiber.Ctx) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	listings, err := h.Service.ListByOwner(c.Context(), actorID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Listings fetched successfully", listings, nil)
}

type updateListingRequest struct {
	Price       *float64 `json:"price"`
	Condition   *string  `json:"condition"`
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
}

// UpdateListing PUT /api/v1/listings/:listing_id — owner-only attribute
// edits; status never moves through this path.
func (h *Handlers) UpdateListing(c *fiber.Ctx) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	var req updateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	listing, err := h.Service.UpdateAttributes(c.Context(), listingID, actorID, listsvc.UpdateAttributesInput{
		Price:       req.Price,
		Condition:   req.Condition,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Listing updated successfully", listing, nil)
}

// DeleteListing DELETE /api/v1/listings/:listing_id
func (h *Handlers) DeleteListing(c *fiber.Ctx) error {
	actorID, ok := middleware.ActorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	listingID, err := uuid.Parse(c.Params("listing_id"))
	if err != nil {
		return response.Error(c, "Invalid listing_id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), listingID, actorID); err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Listing deleted successfully", nil, nil)
}
