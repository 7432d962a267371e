package models

import "time"

// TeamMember is an agent or staff profile in the team directory
type TeamMember struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(160);not null" json:"name"`
	Role         string    `gorm:"type:varchar(120)" json:"role,omitempty"`
	Bio          string    `gorm:"type:text" json:"bio,omitempty"`
	PhotoURL     string    `gorm:"type:text" json:"photo_url,omitempty"`
	Email        string    `gorm:"type:varchar(200)" json:"email,omitempty"`
	Phone        string    `gorm:"type:varchar(40)" json:"phone,omitempty"`
	DisplayOrder int       `gorm:"not null;default:0;index" json:"display_order"`
	Active       bool      `gorm:"not null;default:true;index" json:"active"`
	CreatedAt    time.Time `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (TeamMember) TableName() string {
	return "team_members"
}
