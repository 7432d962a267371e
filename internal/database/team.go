package database

import (
	"property-portal/internal/models"

	"github.com/google/uuid"
)

// ListTeamMembers returns team members in display order. When
// activeOnly is set, hidden profiles are skipped.
func (gdb *GormDB) ListTeamMembers(activeOnly bool) ([]models.TeamMember, error) {
	q := gdb.db.Model(&models.TeamMember{})
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var members []models.TeamMember
	err := q.Order("display_order ASC, name ASC").Find(&members).Error
	return members, err
}

// SaveTeamMember creates or updates a team member profile
func (gdb *GormDB) SaveTeamMember(member *models.TeamMember) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	return gdb.db.Save(member).Error
}

// DeleteTeamMember removes a team member profile
func (gdb *GormDB) DeleteTeamMember(id string) error {
	return gdb.db.Delete(&models.TeamMember{}, "id = ?", id).Error
}
