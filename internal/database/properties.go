package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"property-portal/internal/listing"
	"property-portal/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PropertyFilters is the parsed form of the listing query parameters.
// Filters are OR'd within a dimension and AND'd across dimensions;
// an unset field never excludes results.
type PropertyFilters struct {
	Search        string
	MinPrice      *int64
	MaxPrice      *int64
	Locations     []string
	Types         []string
	Bedrooms      []string // tokens: "Studio", "1".."4", "5+"
	Bathrooms     []string // tokens: "1".."4", "5+"
	Features      []string
	Amenities     []string
	IsFeatured    *bool
	IsHotProperty *bool
	SortBy        string
	SortOrder     string
	Limit         int
	Offset        int
}

// Columns accepted for sort_by; anything else falls back to the stable
// default ordering so result order is deterministic.
var sortableColumns = map[string]bool{
	"display_order": true,
	"price":         true,
	"created_at":    true,
	"area":          true,
	"bedrooms":      true,
	"title":         true,
	"is_featured":   true,
}

// listedScope restricts queries to listings visible on the public site
func listedScope(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL AND status <> ?", models.PropertyStatusDraft)
}

// ListProperties returns one page of matching properties plus the total
// match count across all pages.
func (gdb *GormDB) ListProperties(f PropertyFilters) (*listing.ResultPage, error) {
	q := listedScope(gdb.db.Model(&models.Property{}))

	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("(title LIKE ? OR location LIKE ? OR description LIKE ?)", like, like, like)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if len(f.Locations) > 0 {
		q = q.Where("location IN ?", f.Locations)
	}
	if len(f.Types) > 0 {
		q = q.Where("property_type IN ?", f.Types)
	}
	if cond, args := roomTokenCondition("bedrooms", f.Bedrooms); cond != "" {
		q = q.Where(cond, args...)
	}
	if cond, args := roomTokenCondition("bathrooms", f.Bathrooms); cond != "" {
		q = q.Where(cond, args...)
	}
	if cond, args := jsonListCondition("features", f.Features); cond != "" {
		q = q.Where(cond, args...)
	}
	if cond, args := jsonListCondition("amenities", f.Amenities); cond != "" {
		q = q.Where(cond, args...)
	}
	if f.IsFeatured != nil {
		q = q.Where("is_featured = ?", *f.IsFeatured)
	}
	if f.IsHotProperty != nil {
		q = q.Where("is_hot_property = ?", *f.IsHotProperty)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	limit := f.Limit
	if limit < 1 {
		limit = 6
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var items []models.Property
	err := q.Order(orderClause(f.SortBy, f.SortOrder)).
		Limit(limit).
		Offset(offset).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Find(&items).Error
	if err != nil {
		return nil, err
	}

	return &listing.ResultPage{
		Data: items,
		Pagination: listing.Pagination{
			Limit:  limit,
			Offset: offset,
			Total:  int(total),
		},
	}, nil
}

// roomTokenCondition translates bedroom/bathroom tokens into an OR'd
// SQL condition: "Studio" matches 0 bedrooms, "5+" matches 5 or more,
// numeric tokens match exactly. Unknown tokens are skipped rather than
// matching nothing.
func roomTokenCondition(column string, tokens []string) (string, []interface{}) {
	if len(tokens) == 0 {
		return "", nil
	}
	var parts []string
	var args []interface{}
	for _, t := range tokens {
		switch {
		case t == "Studio":
			parts = append(parts, column+" = 0")
		case strings.HasSuffix(t, "+"):
			n, err := strconv.Atoi(strings.TrimSuffix(t, "+"))
			if err != nil {
				continue
			}
			parts = append(parts, column+" >= ?")
			args = append(args, n)
		default:
			n, err := strconv.Atoi(t)
			if err != nil {
				continue
			}
			parts = append(parts, column+" = ?")
			args = append(args, n)
		}
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// jsonListCondition matches any of the wanted values inside a JSON
// string-list column (MySQL JSON_CONTAINS), OR'd within the dimension.
func jsonListCondition(column string, wanted []string) (string, []interface{}) {
	if len(wanted) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(wanted))
	args := make([]interface{}, 0, len(wanted))
	for _, w := range wanted {
		parts = append(parts, "JSON_CONTAINS("+column+", JSON_QUOTE(?))")
		args = append(args, w)
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

// orderClause maps a validated sort column/direction to an ORDER BY
// clause with deterministic tie-breaking.
func orderClause(sortBy, sortOrder string) string {
	if !sortableColumns[sortBy] {
		sortBy = "display_order"
		sortOrder = "asc"
	}
	dir := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		dir = "DESC"
	}
	clause := fmt.Sprintf("%s %s", sortBy, dir)
	if sortBy != "display_order" {
		clause += ", display_order ASC"
	}
	return clause + ", id ASC"
}

// PriceRange returns MIN(price) and MAX(price) over publicly listed
// properties. An empty catalog returns (0, 0) with no error; the
// caller's bound resolver handles the fallback.
func (gdb *GormDB) PriceRange(ctx context.Context) (min, max int64, err error) {
	var row struct {
		Min sql.NullInt64
		Max sql.NullInt64
	}
	err = listedScope(gdb.db.WithContext(ctx).Model(&models.Property{})).
		Select("MIN(price) AS min, MAX(price) AS max").
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Min.Int64, row.Max.Int64, nil
}

// SimilarProperties returns up to limit listings related to the given
// property: same location or same property type, the source row always
// excluded. Featured listings come first.
func (gdb *GormDB) SimilarProperties(propertyID string, limit int) ([]models.Property, error) {
	if limit < 1 {
		limit = 3
	}

	source, err := gdb.GetPropertyByID(propertyID)
	if err != nil {
		return nil, err
	}

	var items []models.Property
	err = listedScope(gdb.db.Model(&models.Property{})).
		Where("id <> ?", propertyID).
		Where("(location = ? OR property_type = ?)", source.Location, source.PropertyType).
		Order("is_featured DESC, display_order ASC, id ASC").
		Limit(limit).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetPropertyByID retrieves a non-deleted property with its images
func (gdb *GormDB) GetPropertyByID(id string) (*models.Property, error) {
	var property models.Property
	err := gdb.db.Where("id = ? AND deleted_at IS NULL", id).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// GetPropertyBySlug retrieves a non-deleted property by its slug
func (gdb *GormDB) GetPropertyBySlug(slug string) (*models.Property, error) {
	var property models.Property
	err := gdb.db.Where("slug = ? AND deleted_at IS NULL", slug).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&property).Error
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// SaveProperty creates or updates a property together with its images.
// Images are replaced wholesale within the transaction, but an empty
// image list on update leaves existing images untouched.
func (gdb *GormDB) SaveProperty(p *models.Property, images []models.PropertyImage) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.Status == "" {
		p.Status = models.PropertyStatusAvailable
	}

	return gdb.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Property
		result := tx.Where("id = ?", p.ID).First(&existing)

		if result.Error == gorm.ErrRecordNotFound {
			if err := tx.Omit("Images").Create(p).Error; err != nil {
				return err
			}
		} else if result.Error != nil {
			return result.Error
		} else {
			// Keep original CreatedAt and soft-delete marker
			p.CreatedAt = existing.CreatedAt
			p.DeletedAt = existing.DeletedAt
			if err := tx.Omit("Images").Save(p).Error; err != nil {
				return err
			}
		}

		return savePropertyImages(tx, p.ID, images)
	})
}

// savePropertyImages replaces a property's images within a transaction.
// An empty list does nothing so partial admin updates preserve data.
func savePropertyImages(tx *gorm.DB, propertyID string, images []models.PropertyImage) error {
	if len(images) == 0 {
		return nil
	}

	if err := tx.Where("property_id = ?", propertyID).Delete(&models.PropertyImage{}).Error; err != nil {
		return err
	}

	for i := range images {
		images[i].ID = 0
		images[i].PropertyID = propertyID
		images[i].SortOrder = i
	}
	return tx.Create(&images).Error
}

// SoftDeleteProperty hides a property from all public queries without
// destroying the row. Physical removal happens via the cleanup service.
func (gdb *GormDB) SoftDeleteProperty(id string) error {
	now := time.Now()
	result := gdb.db.Model(&models.Property{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", &now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
