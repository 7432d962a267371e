package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"property-portal/internal/cleanup"
	"property-portal/internal/database"
	"property-portal/internal/models"
	"property-portal/internal/scheduler"
	"property-portal/internal/search"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles the back-office API
type AdminHandler struct {
	db             *database.GormDB
	scheduler      *scheduler.Scheduler
	searchClient   *search.SearchClient
	cleanupService *cleanup.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *database.GormDB, sched *scheduler.Scheduler, searchClient *search.SearchClient) *AdminHandler {
	return &AdminHandler{
		db:             db,
		scheduler:      sched,
		searchClient:   searchClient,
		cleanupService: cleanup.NewService(db.DB()),
	}
}

// GetStats returns system statistics
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats := make(map[string]interface{})
	db := h.db.DB()

	// Property counts by status
	statusCounts := make(map[string]int64)
	var total int64
	for _, status := range []models.PropertyStatus{
		models.PropertyStatusAvailable,
		models.PropertyStatusSold,
		models.PropertyStatusRented,
		models.PropertyStatusDraft,
	} {
		var count int64
		db.Model(&models.Property{}).
			Where("status = ? AND deleted_at IS NULL", status).
			Count(&count)
		statusCounts[string(status)] = count
		total += count
	}
	statusCounts["total"] = total
	stats["properties"] = statusCounts

	var featured int64
	db.Model(&models.Property{}).
		Where("is_featured = ? AND deleted_at IS NULL", true).
		Count(&featured)
	stats["featured"] = featured

	// Recent edits (last 7 days)
	last7days := time.Now().AddDate(0, 0, -7)
	var recentlyUpdated int64
	db.Model(&models.Property{}).Where("updated_at >= ?", last7days).Count(&recentlyUpdated)
	stats["recent_activity"] = map[string]interface{}{
		"updated_last_7_days": recentlyUpdated,
	}

	// Blog and team counts
	var postCount, memberCount int64
	db.Model(&models.BlogPost{}).Where("published = ?", true).Count(&postCount)
	db.Model(&models.TeamMember{}).Where("active = ?", true).Count(&memberCount)
	stats["blog_posts"] = postCount
	stats["team_members"] = memberCount

	// Deletion statistics
	deleteStats, err := h.cleanupService.GetDeleteStats()
	if err != nil {
		log.Printf("Failed to get delete stats: %v", err)
	} else {
		stats["deletions"] = deleteStats
	}

	c.JSON(http.StatusOK, stats)
}

// GetLocationStats returns listing counts per location
func (h *AdminHandler) GetLocationStats(c *gin.Context) {
	type LocationStat struct {
		Location string `json:"location"`
		Count    int64  `json:"count"`
	}

	var stats []LocationStat
	err := h.db.DB().Model(&models.Property{}).
		Select("location, count(*) as count").
		Where("deleted_at IS NULL AND location IS NOT NULL AND location != ''").
		Group("location").
		Order("count DESC").
		Limit(20).
		Scan(&stats).Error

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"location_stats": stats,
		"count":          len(stats),
	})
}

// GetPriceDistribution returns listing counts per price band
func (h *AdminHandler) GetPriceDistribution(c *gin.Context) {
	type PriceBand struct {
		RangeLabel string `json:"range_label"`
		MinPrice   int64  `json:"min_price"`
		MaxPrice   int64  `json:"max_price"`
		Count      int64  `json:"count"`
	}

	bands := []PriceBand{
		{RangeLabel: "Under 500K", MinPrice: 0, MaxPrice: 500_000},
		{RangeLabel: "500K - 1M", MinPrice: 500_000, MaxPrice: 1_000_000},
		{RangeLabel: "1M - 2M", MinPrice: 1_000_000, MaxPrice: 2_000_000},
		{RangeLabel: "2M - 5M", MinPrice: 2_000_000, MaxPrice: 5_000_000},
		{RangeLabel: "5M - 10M", MinPrice: 5_000_000, MaxPrice: 10_000_000},
		{RangeLabel: "10M+", MinPrice: 10_000_000, MaxPrice: 1_000_000_000},
	}

	for i := range bands {
		var count int64
		h.db.DB().Model(&models.Property{}).
			Where("deleted_at IS NULL AND price >= ? AND price < ?",
				bands[i].MinPrice, bands[i].MaxPrice).
			Count(&count)
		bands[i].Count = count
	}

	c.JSON(http.StatusOK, gin.H{
		"price_distribution": bands,
	})
}

// propertyRequest is the admin payload for creating/updating a listing
type propertyRequest struct {
	Slug          string   `json:"slug"`
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Price         int64    `json:"price" binding:"required"`
	Bedrooms      int      `json:"bedrooms"`
	Bathrooms     int      `json:"bathrooms"`
	Area          float64  `json:"area"`
	AreaUnit      string   `json:"area_unit"`
	Location      string   `json:"location"`
	PropertyType  string   `json:"property_type"`
	Features      []string `json:"features"`
	Amenities     []string `json:"amenities"`
	IsFeatured    bool     `json:"is_featured"`
	IsHotProperty bool     `json:"is_hot_property"`
	DisplayOrder  int      `json:"display_order"`
	Status        string   `json:"status"`
	Images        []struct {
		ImageURL string `json:"image_url" binding:"required"`
		AltText  string `json:"alt_text"`
	} `json:"images"`
}

func (r *propertyRequest) toModel(id string) (*models.Property, []models.PropertyImage) {
	p := &models.Property{
		ID:            id,
		Slug:          r.Slug,
		Title:         r.Title,
		Description:   r.Description,
		Price:         r.Price,
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		Area:          r.Area,
		AreaUnit:      r.AreaUnit,
		Location:      r.Location,
		PropertyType:  r.PropertyType,
		Features:      models.StringList(r.Features),
		Amenities:     models.StringList(r.Amenities),
		IsFeatured:    r.IsFeatured,
		IsHotProperty: r.IsHotProperty,
		DisplayOrder:  r.DisplayOrder,
		Status:        models.PropertyStatus(r.Status),
	}

	images := make([]models.PropertyImage, 0, len(r.Images))
	for i, img := range r.Images {
		images = append(images, models.PropertyImage{
			ImageURL:  img.ImageURL,
			AltText:   img.AltText,
			SortOrder: i,
		})
	}
	return p, images
}

// CreateProperty handles POST /api/admin/properties
func (h *AdminHandler) CreateProperty(c *gin.Context) {
	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, images := req.toModel("")
	if err := h.db.SaveProperty(property, images); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.searchClient.IndexProperty(property); err != nil {
		log.Printf("Warning: Failed to index property %s: %v", property.ID, err)
	}

	c.JSON(http.StatusCreated, property)
}

// UpdateProperty handles PUT /api/admin/properties/:id
func (h *AdminHandler) UpdateProperty(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.db.GetPropertyByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	var req propertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	property, images := req.toModel(id)
	if err := h.db.SaveProperty(property, images); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.searchClient.IndexProperty(property); err != nil {
		log.Printf("Warning: Failed to index property %s: %v", property.ID, err)
	}

	c.JSON(http.StatusOK, property)
}

// DeleteProperty handles DELETE /api/admin/properties/:id (soft delete)
func (h *AdminHandler) DeleteProperty(c *gin.Context) {
	id := c.Param("id")
	if err := h.db.SoftDeleteProperty(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	if err := h.searchClient.RemoveProperty(id); err != nil {
		log.Printf("Warning: Failed to remove property %s from index: %v", id, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Property deleted", "id": id})
}

// SaveBlogPost handles POST /api/admin/blog and PUT /api/admin/blog/:id
func (h *AdminHandler) SaveBlogPost(c *gin.Context) {
	var post models.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if id := c.Param("id"); id != "" {
		post.ID = id
	}

	if err := h.db.SavePost(&post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeleteBlogPost handles DELETE /api/admin/blog/:id
func (h *AdminHandler) DeleteBlogPost(c *gin.Context) {
	if err := h.db.DeletePost(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// SaveTeamMember handles POST /api/admin/team and PUT /api/admin/team/:id
func (h *AdminHandler) SaveTeamMember(c *gin.Context) {
	var member models.TeamMember
	if err := c.ShouldBindJSON(&member); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if id := c.Param("id"); id != "" {
		member.ID = id
	}

	if err := h.db.SaveTeamMember(&member); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, member)
}

// DeleteTeamMember handles DELETE /api/admin/team/:id
func (h *AdminHandler) DeleteTeamMember(c *gin.Context) {
	if err := h.db.DeleteTeamMember(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Team member deleted"})
}

// RunCleanup executes physical deletion of old soft-deleted properties
func (h *AdminHandler) RunCleanup(c *gin.Context) {
	var req struct {
		RetentionDays    int  `json:"retention_days"`
		MaxDeletionCount int  `json:"max_deletion_count"`
		DryRun           bool `json:"dry_run"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	config := cleanup.DefaultConfig()
	if req.RetentionDays > 0 {
		config.RetentionDays = req.RetentionDays
	}
	if req.MaxDeletionCount > 0 {
		config.MaxDeletionCount = req.MaxDeletionCount
	}
	config.DryRun = req.DryRun

	log.Printf("Admin: Running cleanup (retention: %d days, max: %d, dry-run: %v)",
		config.RetentionDays, config.MaxDeletionCount, config.DryRun)

	result, err := h.cleanupService.PhysicallyDelete(config)
	if err != nil {
		log.Printf("Admin: Cleanup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDeleteLogs returns recent delete log entries
func (h *AdminHandler) GetDeleteLogs(c *gin.Context) {
	limitStr := c.DefaultQuery("limit", "100")
	limit, _ := strconv.Atoi(limitStr)

	logs, err := h.cleanupService.GetRecentDeleteLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"count": len(logs),
	})
}

// TriggerMaintenance manually triggers the maintenance job
func (h *AdminHandler) TriggerMaintenance(c *gin.Context) {
	if h.scheduler == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Scheduler not available"})
		return
	}

	log.Println("Admin: Manual maintenance trigger requested")

	// Run in goroutine to avoid blocking
	go func() {
		if err := h.scheduler.RunNow(); err != nil {
			log.Printf("Admin: Manual maintenance failed: %v", err)
		} else {
			log.Println("Admin: Manual maintenance completed successfully")
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Maintenance job started",
		"status":  "running",
	})
}

// Reindex rebuilds the search index from the database
func (h *AdminHandler) Reindex(c *gin.Context) {
	log.Println("[Reindex] Starting full reindex of all properties")

	var properties []models.Property
	err := h.db.DB().
		Where("deleted_at IS NULL AND status <> ?", models.PropertyStatusDraft).
		Find(&properties).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch properties from database"})
		return
	}

	if err := h.searchClient.IndexProperties(properties); err != nil {
		log.Printf("[Reindex] Indexing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to index properties"})
		return
	}

	log.Printf("[Reindex] Reindex complete. Indexed: %d", len(properties))

	c.JSON(http.StatusOK, gin.H{
		"message": "Reindex complete",
		"indexed": len(properties),
	})
}
