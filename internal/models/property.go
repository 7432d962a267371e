package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// StringList is a JSON-encoded list of strings stored in a single column.
// Used for property features and amenities.
type StringList []string

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Contains reports whether the list holds the given value
func (l StringList) Contains(v string) bool {
	for _, s := range l {
		if s == v {
			return true
		}
	}
	return false
}

type Property struct {
	// Identity
	ID    string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Slug  string `gorm:"type:varchar(200);not null;uniqueIndex" json:"slug"`
	Title string `gorm:"type:varchar(300);not null" json:"title"`

	Description string `gorm:"type:text" json:"description,omitempty"`

	// Filter attributes
	Price        int64      `gorm:"type:bigint;not null;index" json:"price"`
	Bedrooms     int        `gorm:"type:int;not null;default:0;index" json:"bedrooms"`
	Bathrooms    int        `gorm:"type:int;not null;default:1" json:"bathrooms"`
	Area         float64    `gorm:"type:decimal(10,2)" json:"area,omitempty"`
	AreaUnit     string     `gorm:"type:varchar(10);default:'sqft'" json:"area_unit,omitempty"`
	Location     string     `gorm:"type:varchar(120);index" json:"location,omitempty"`
	PropertyType string     `gorm:"type:varchar(60);index" json:"property_type,omitempty"`
	Features     StringList `gorm:"type:json" json:"features,omitempty"`
	Amenities    StringList `gorm:"type:json" json:"amenities,omitempty"`

	// Listing presentation
	IsFeatured    bool `gorm:"not null;default:false;index" json:"is_featured"`
	IsHotProperty bool `gorm:"not null;default:false" json:"is_hot_property"`
	DisplayOrder  int  `gorm:"not null;default:0;index" json:"display_order"`

	// Status management (logical deletion)
	Status    PropertyStatus `gorm:"type:varchar(20);not null;default:'available';index" json:"status"`
	DeletedAt *time.Time     `gorm:"type:datetime;index" json:"deleted_at,omitempty"`

	Images []PropertyImage `gorm:"foreignKey:PropertyID" json:"images,omitempty"`

	// Timestamps
	CreatedAt time.Time `gorm:"type:datetime;not null;autoCreateTime;index:idx_properties_created_at,sort:desc" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime;not null;autoUpdateTime" json:"updated_at"`
}

// PropertyStatus is the publication state of a listing
type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusSold      PropertyStatus = "sold"
	PropertyStatusRented    PropertyStatus = "rented"
	PropertyStatusDraft     PropertyStatus = "draft"
)

// TableName specifies the table name
func (Property) TableName() string {
	return "properties"
}

// IsDeleted reports whether the listing has been soft-deleted
func (p *Property) IsDeleted() bool {
	return p.DeletedAt != nil
}

// MarkAsDeleted soft-deletes the listing
func (p *Property) MarkAsDeleted() {
	now := time.Now()
	p.DeletedAt = &now
}
