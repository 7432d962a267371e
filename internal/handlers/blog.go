package handlers

import (
	"net/http"
	"strconv"

	"property-portal/internal/database"

	"github.com/gin-gonic/gin"
)

// BlogHandler serves the public blog endpoints
type BlogHandler struct {
	db *database.GormDB
}

// NewBlogHandler creates a blog handler
func NewBlogHandler(db *database.GormDB) *BlogHandler {
	return &BlogHandler{db: db}
}

// List handles GET /api/blog
func (h *BlogHandler) List(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	offset := 0
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}

	posts, total, err := h.db.ListPublishedPosts(limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": posts,
		"pagination": gin.H{
			"limit":  limit,
			"offset": offset,
			"total":  total,
		},
	})
}

// Get handles GET /api/blog/:slug
func (h *BlogHandler) Get(c *gin.Context) {
	post, err := h.db.GetPostBySlug(c.Param("slug"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}
