package search

import (
	"context"
	"sort"
	"strings"

	"goodswap-backend/internal/domain"
	"goodswap-backend/internal/pkg/apperrors"
	"goodswap-backend/internal/pkg/geo"

	"gorm.io/gorm"
)

// DefaultRadiusKm applies when a nearby query carries no radius.
const DefaultRadiusKm = 10.0

// Service is the read-only discovery engine over the listing store. It
// never mutates listings and tolerates slightly stale snapshots.
// RadiusKm overrides DefaultRadiusKm when set.
type Service struct {
	DB       *gorm.DB
	RadiusKm float64
}

// NearbyListing is a listing with its computed distance from the query
// point. The same formula and Earth-radius constant back both the radius
// filter and this value.
type NearbyListing struct {
	domain.Listing
	DistanceKm float64 `json:"distance_km"`
}

type NearbyInput struct {
	Latitude  float64
	Longitude float64
	RadiusKm  float64
}

// Nearby returns available listings within RadiusKm of the query point,
// ascending by distance.
func (s *Service) Nearby(ctx context.Context, in NearbyInput) ([]NearbyListing, error) {
	if !geo.ValidLatitude(in.Latitude) {
		return nil, apperrors.NewInvalidArgument("latitude must be between -90 and 90")
	}
	if !geo.ValidLongitude(in.Longitude) {
		return nil, apperrors.NewInvalidArgument("longitude must be between -180 and 180")
	}
	radius := in.RadiusKm
	if radius <= 0 {
		radius = s.RadiusKm
	}
	if radius <= 0 {
		radius = DefaultRadiusKm
	}

	var listings []domain.Listing
	err := s.DB.WithContext(ctx).Preload("Images").
		Where("status = ?", domain.ListingAvailable).Find(&listings).Error
	if err != nil {
		return nil, err
	}

	out := make([]NearbyListing, 0, len(listings))
	for i := range listings {
		d := geo.Distance(in.Latitude, in.Longitude, listings[i].Latitude, listings[i].Longitude)
		if d <= radius {
			out = append(out, NearbyListing{Listing: listings[i], DistanceKm: d})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DistanceKm < out[j].DistanceKm })
	return out, nil
}

// Allow-listed sort fields. Anything else falls back to creation time.
var sortColumns = map[string]string{
	"price":      "price",
	"created_at": "created_at",
	"title":      "title",
}

type FilterInput struct {
	Category  string
	Modality  string
	Condition string
	MinPrice  *float64
	MaxPrice  *float64
	Query     string // case-insensitive substring over title and description
	SortBy    string
	SortOrder string // "asc" | "desc"
}

// Filter returns available listings matching every supplied predicate
// (AND semantics). Unrecognized sort input silently falls back to
// created_at descending so discovery stays robust against malformed
// client input.
func (s *Service) Filter(ctx context.Context, in FilterInput) ([]domain.Listing, error) {
	q := s.DB.WithContext(ctx).Preload("Images").
		Where("status = ?", domain.ListingAvailable)

	if in.Category != "" {
		q = q.Where("category = ?", in.Category)
	}
	if in.Modality != "" {
		q = q.Where("modality = ?", in.Modality)
	}
	if in.Condition != "" {
		q = q.Where("condition = ?", in.Condition)
	}
	if in.MinPrice != nil {
		q = q.Where("price >= ?", *in.MinPrice)
	}
	if in.MaxPrice != nil {
		q = q.Where("price <= ?", *in.MaxPrice)
	}
	if in.Query != "" {
		needle := "%" + strings.ToLower(in.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", needle, needle)
	}

	column, ok := sortColumns[in.SortBy]
	order := strings.ToLower(in.SortOrder)
	if !ok {
		column, order = "created_at", "desc"
	} else if order != "asc" && order != "desc" {
		order = "desc"
	}

	var listings []domain.Listing
	if err := q.Order(column + " " + order).Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}
