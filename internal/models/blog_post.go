package models

import "time"

// BlogPost is an article published on the marketing site
type BlogPost struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Slug        string     `gorm:"type:varchar(200);not null;uniqueIndex" json:"slug"`
	Title       string     `gorm:"type:varchar(300);not null" json:"title"`
	Excerpt     string     `gorm:"type:text" json:"excerpt,omitempty"`
	Content     string     `gorm:"type:longtext" json:"content,omitempty"`
	CoverImage  string     `gorm:"type:text" json:"cover_image,omitempty"`
	Author      string     `gorm:"type:varchar(120)" json:"author,omitempty"`
	Published   bool       `gorm:"not null;default:false;index" json:"published"`
	PublishedAt *time.Time `gorm:"type:datetime;index" json:"published_at,omitempty"`
	CreatedAt   time.Time  `gorm:"type:datetime;not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (BlogPost) TableName() string {
	return "blog_posts"
}
