package handlers

import (
	"net/http"

	"property-portal/internal/database"

	"github.com/gin-gonic/gin"
)

// TeamHandler serves the public team directory
type TeamHandler struct {
	db *database.GormDB
}

// NewTeamHandler creates a team handler
func NewTeamHandler(db *database.GormDB) *TeamHandler {
	return &TeamHandler{db: db}
}

// List handles GET /api/team
func (h *TeamHandler) List(c *gin.Context) {
	members, err := h.db.ListTeamMembers(true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load team"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"members": members,
		"count":   len(members),
	})
}
