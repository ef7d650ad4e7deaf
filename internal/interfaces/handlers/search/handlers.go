package search

import (
	"strconv"

	searchsvc "goodswap-backend/internal/application/search"
	"goodswap-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *searchsvc.Service
}

// Nearby GET /api/v1/search/nearby?lat=&lng=&radius=
func (h *Handlers) Nearby(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return response.Error(c, "lat is required and must be a number", fiber.StatusBadRequest, nil)
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return response.Error(c, "lng is required and must be a number", fiber.StatusBadRequest, nil)
	}
	radius := 0.0
	if r := c.Query("radius"); r != "" {
		radius, err = strconv.ParseFloat(r, 64)
		if err != nil {
			return response.Error(c, "radius must be a number", fiber.StatusBadRequest, nil)
		}
	}

	results, err := h.Service.Nearby(c.Context(), searchsvc.NearbyInput{
		Latitude:  lat,
		Longitude: lng,
		RadiusKm:  radius,
	})
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Nearby listings fetched successfully", results, fiber.Map{"count": len(results)})
}

// Filter GET /api/v1/search?category=&modality=&condition=&min_price=&max_price=&q=&sort_by=&order=
func (h *Handlers) Filter(c *fiber.Ctx) error {
	in := searchsvc.FilterInput{
		Category:  c.Query("category"),
		Modality:  c.Query("modality"),
		Condition: c.Query("condition"),
		Query:     c.Query("q"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("order"),
	}
	if v := c.Query("min_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return response.Error(c, "min_price must be a number", fiber.StatusBadRequest, nil)
		}
		in.MinPrice = &f
	}
	if v := c.Query("max_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return response.Error(c, "max_price must be a number", fiber.StatusBadRequest, nil)
		}
		in.MaxPrice = &f
	}

	results, err := h.Service.Filter(c.Context(), in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Listings fetched successfully", results, fiber.Map{"count": len(results)})
}
