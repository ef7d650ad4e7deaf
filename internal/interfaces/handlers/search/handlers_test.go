package search

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	searchsvc "goodswap-backend/internal/application/search"
	"goodswap-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupSearchTest(t *testing.T) (*Handlers, *gorm.DB) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Listing{}, &domain.ListingImage{}))
	return &Handlers{Service: &searchsvc.Service{DB: db}}, db
}

func seedAvailable(t *testing.T, db *gorm.DB, title string, lat, lng float64) {
	require.NoError(t, db.Create(&domain.Listing{
		OwnerID: uuid.New(), Category: domain.CategoryBooks, Modality: domain.ModalitySale,
		Price: 100, Title: title, Latitude: lat, Longitude: lng,
		Status: domain.ListingAvailable,
	}).Error)
}

func TestNearby_ReturnsWithinRadius(t *testing.T) {
	h, db := setupSearchTest(t)
	seedAvailable(t, db, "Close by", 31.4697, 74.2728)
	seedAvailable(t, db, "Too far", 33.6844, 73.0479)

	app := fiber.New()
	app.Get("/search/nearby", h.Nearby)

	req := httptest.NewRequest("GET", "/search/nearby?lat=31.4697&lng=74.2728&radius=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	data, ok := result["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)
	first, _ := data[0].(map[string]interface{})
	assert.Equal(t, "Close by", first["title"])
	assert.Contains(t, first, "distance_km")
}

func TestNearby_MissingCoordinates(t *testing.T) {
	h, _ := setupSearchTest(t)
	app := fiber.New()
	app.Get("/search/nearby", h.Nearby)

	req := httptest.NewRequest("GET", "/search/nearby?lng=74.2728", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestNearby_OutOfRangeCoordinates(t *testing.T) {
	h, _ := setupSearchTest(t)
	app := fiber.New()
	app.Get("/search/nearby", h.Nearby)

	req := httptest.NewRequest("GET", "/search/nearby?lat=91&lng=74.2728", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestFilter_ByCategoryAndPrice(t *testing.T) {
	h, db := setupSearchTest(t)
	require.NoError(t, db.Create(&domain.Listing{
		OwnerID: uuid.New(), Category: domain.CategoryBooks, Modality: domain.ModalitySale,
		Price: 80, Title: "Cheap book", Latitude: 31.5, Longitude: 74.3,
		Status: domain.ListingAvailable,
	}).Error)
	require.NoError(t, db.Create(&domain.Listing{
		OwnerID: uuid.New(), Category: domain.CategoryBooks, Modality: domain.ModalitySale,
		Price: 500, Title: "Rare book", Latitude: 31.5, Longitude: 74.3,
		Status: domain.ListingAvailable,
	}).Error)

	app := fiber.New()
	app.Get("/search", h.Filter)

	req := httptest.NewRequest("GET", "/search?category=books&max_price=100", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var result map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&result)
	data, ok := result["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)
	first, _ := data[0].(map[string]interface{})
	assert.Equal(t, "Cheap book", first["title"])
}

func TestFilter_BadPriceParam(t *testing.T) {
	h, _ := setupSearchTest(t)
	app := fiber.New()
	app.Get("/search", h.Filter)

	req := httptest.NewRequest("GET", "/search?min_price=lots", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
