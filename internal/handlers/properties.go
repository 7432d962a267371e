package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"property-portal/internal/database"
	"property-portal/internal/filter"
	"property-portal/internal/listing"
	"property-portal/internal/models"

	"github.com/gin-gonic/gin"
)

// PropertyStore is the read surface the public property handlers need
type PropertyStore interface {
	ListProperties(f database.PropertyFilters) (*listing.ResultPage, error)
	GetPropertyByID(id string) (*models.Property, error)
	GetPropertyBySlug(slug string) (*models.Property, error)
	PriceRange(ctx context.Context) (min, max int64, err error)
	SimilarProperties(propertyID string, limit int) ([]models.Property, error)
}

// PropertiesHandler serves the public listing endpoints
type PropertiesHandler struct {
	store           PropertyStore
	defaultPageSize int
}

// NewPropertiesHandler creates a handler over the given store
func NewPropertiesHandler(store PropertyStore, defaultPageSize int) *PropertiesHandler {
	if defaultPageSize < 1 {
		defaultPageSize = filter.DefaultPageSize
	}
	return &PropertiesHandler{store: store, defaultPageSize: defaultPageSize}
}

// List handles GET /api/properties: the filtered, sorted, paginated
// listing query. Absent parameters mean "unconstrained".
func (h *PropertiesHandler) List(c *gin.Context) {
	filters := h.parseFilters(c)

	start := time.Now()
	result, err := h.store.ListProperties(filters)
	duration := time.Since(start)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load properties"})
		return
	}

	log.Printf("[Listing API] duration_ms=%d total=%d limit=%d offset=%d sort=%s",
		duration.Milliseconds(), result.Pagination.Total, result.Pagination.Limit,
		result.Pagination.Offset, filters.SortBy)

	c.JSON(http.StatusOK, result)
}

// parseFilters builds PropertyFilters from query parameters
func (h *PropertiesHandler) parseFilters(c *gin.Context) database.PropertyFilters {
	filters := database.PropertyFilters{
		Search:    strings.TrimSpace(c.Query("search")),
		Locations: splitMulti(c.Query("location")),
		Types:     splitMulti(c.Query("property_type")),
		Bedrooms:  splitMulti(c.Query("bedrooms")),
		Bathrooms: splitMulti(c.Query("bathrooms")),
		Features:  splitMulti(c.Query("features")),
		Amenities: splitMulti(c.Query("amenities")),
		SortBy:    c.DefaultQuery("sort_by", "display_order"),
		SortOrder: c.DefaultQuery("sort_order", "asc"),
		Limit:     h.defaultPageSize,
	}

	// Price bounds
	if v := c.Query("min_price"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			filters.MinPrice = &n
		}
	}
	if v := c.Query("max_price"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			filters.MaxPrice = &n
		}
	}

	// Flags
	if v := c.Query("is_featured"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filters.IsFeatured = &b
		}
	}
	if v := c.Query("is_hot_property"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			filters.IsHotProperty = &b
		}
	}

	// Pagination
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			filters.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			filters.Offset = n
		}
	}

	return filters
}

// Get handles GET /api/properties/:id. The parameter may be either an
// ID or a slug; slugs are what the public site links by.
func (h *PropertiesHandler) Get(c *gin.Context) {
	key := c.Param("id")

	property, err := h.store.GetPropertyByID(key)
	if err != nil {
		property, err = h.store.GetPropertyBySlug(key)
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, property)
}

// PriceRange handles GET /api/properties/price-range and returns the
// raw catalog min/max; display rounding is the client's concern.
func (h *PropertiesHandler) PriceRange(c *gin.Context) {
	min, max, err := h.store.PriceRange(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load price range"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"min_price": min,
		"max_price": max,
	})
}

// Similar handles GET /api/properties/similar
func (h *PropertiesHandler) Similar(c *gin.Context) {
	propertyID := c.Query("current_property_id")
	if propertyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "current_property_id is required"})
		return
	}

	limit := 3
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	items, err := h.store.SimilarProperties(propertyID, limit)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	c.JSON(http.StatusOK, listing.ResultPage{
		Data: items,
		Pagination: listing.Pagination{
			Limit: limit,
			Total: len(items),
		},
	})
}

// splitMulti splits a comma-joined multi-select parameter
func splitMulti(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
