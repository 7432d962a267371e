package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"property-portal/internal/listing"
	"property-portal/internal/models"

	_ "github.com/lib/pq"
)

// DB is the PostgreSQL variant of the store, kept as a raw
// database/sql implementation for deployments that run Postgres
// instead of MySQL.
type DB struct {
	conn *sql.DB
}

func NewDB(host, port, user, password, dbname string) (*DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := conn.Ping(); err != nil {
		return nil, err
	}

	return &DB{conn: conn}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

// InitSchema creates the tables if they don't exist
func (db *DB) InitSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS properties (
		id VARCHAR(36) PRIMARY KEY,
		slug VARCHAR(200) NOT NULL UNIQUE,
		title VARCHAR(300) NOT NULL,
		description TEXT,

		-- Filter fields
		price BIGINT NOT NULL,
		bedrooms INTEGER NOT NULL DEFAULT 0,
		bathrooms INTEGER NOT NULL DEFAULT 1,
		area DECIMAL(10, 2),
		area_unit VARCHAR(10) DEFAULT 'sqft',
		location VARCHAR(120),
		property_type VARCHAR(60),
		features JSONB NOT NULL DEFAULT '[]',
		amenities JSONB NOT NULL DEFAULT '[]',

		is_featured BOOLEAN NOT NULL DEFAULT FALSE,
		is_hot_property BOOLEAN NOT NULL DEFAULT FALSE,
		display_order INTEGER NOT NULL DEFAULT 0,

		status VARCHAR(20) NOT NULL DEFAULT 'available',
		deleted_at TIMESTAMP,

		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS property_images (
		id BIGSERIAL PRIMARY KEY,
		property_id VARCHAR(36) NOT NULL,
		image_url TEXT NOT NULL,
		alt_text VARCHAR(200),
		sort_order INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);

	-- Indexes for filtering
	CREATE INDEX IF NOT EXISTS idx_properties_price ON properties(price);
	CREATE INDEX IF NOT EXISTS idx_properties_location ON properties(location);
	CREATE INDEX IF NOT EXISTS idx_properties_bedrooms ON properties(bedrooms);
	CREATE INDEX IF NOT EXISTS idx_properties_display_order ON properties(display_order);
	CREATE INDEX IF NOT EXISTS idx_property_images_property_id ON property_images(property_id);
	`
	_, err := db.conn.Exec(query)
	return err
}

const propertyColumns = `id, slug, title, description,
	price, bedrooms, bathrooms, area, area_unit, location, property_type, features, amenities,
	is_featured, is_hot_property, display_order, status, deleted_at, created_at, updated_at`

// ListProperties is the raw-SQL version of the filtered listing query
func (db *DB) ListProperties(f PropertyFilters) (*listing.ResultPage, error) {
	where := []string{"deleted_at IS NULL", "status <> 'draft'"}
	var args []interface{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.Search != "" {
		like := "%" + f.Search + "%"
		p := arg(like)
		where = append(where, fmt.Sprintf("(title ILIKE %s OR location ILIKE %s OR description ILIKE %s)", p, p, p))
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(*f.MaxPrice))
	}
	if len(f.Locations) > 0 {
		ps := make([]string, len(f.Locations))
		for i, v := range f.Locations {
			ps[i] = arg(v)
		}
		where = append(where, "location IN ("+strings.Join(ps, ", ")+")")
	}
	if len(f.Types) > 0 {
		ps := make([]string, len(f.Types))
		for i, v := range f.Types {
			ps[i] = arg(v)
		}
		where = append(where, "property_type IN ("+strings.Join(ps, ", ")+")")
	}
	for _, dim := range []struct {
		column string
		tokens []string
	}{{"bedrooms", f.Bedrooms}, {"bathrooms", f.Bathrooms}} {
		var parts []string
		for _, t := range dim.tokens {
			switch {
			case t == "Studio":
				parts = append(parts, dim.column+" = 0")
			case strings.HasSuffix(t, "+"):
				if n, err := strconv.Atoi(strings.TrimSuffix(t, "+")); err == nil {
					parts = append(parts, dim.column+" >= "+arg(n))
				}
			default:
				if n, err := strconv.Atoi(t); err == nil {
					parts = append(parts, dim.column+" = "+arg(n))
				}
			}
		}
		if len(parts) > 0 {
			where = append(where, "("+strings.Join(parts, " OR ")+")")
		}
	}
	for _, dim := range []struct {
		column string
		wanted []string
	}{{"features", f.Features}, {"amenities", f.Amenities}} {
		var parts []string
		for _, w := range dim.wanted {
			parts = append(parts, dim.column+" ? "+arg(w))
		}
		if len(parts) > 0 {
			where = append(where, "("+strings.Join(parts, " OR ")+")")
		}
	}
	if f.IsFeatured != nil {
		where = append(where, "is_featured = "+arg(*f.IsFeatured))
	}
	if f.IsHotProperty != nil {
		where = append(where, "is_hot_property = "+arg(*f.IsHotProperty))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := "SELECT COUNT(*) FROM properties WHERE " + whereClause
	if err := db.conn.QueryRow(countQuery, args...).Scan(&total); err != nil {
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

	query := fmt.Sprintf("SELECT %s FROM properties WHERE %s ORDER BY %s LIMIT %s OFFSET %s",
		propertyColumns, whereClause, orderClause(f.SortBy, f.SortOrder), arg(limit), arg(offset))

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.Property, 0, limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &listing.ResultPage{
		Data: items,
		Pagination: listing.Pagination{
			Limit:  limit,
			Offset: offset,
			Total:  total,
		},
	}, nil
}

// PriceRange returns MIN(price)/MAX(price) over publicly listed rows
func (db *DB) PriceRange(ctx context.Context) (min, max int64, err error) {
	var minPrice, maxPrice sql.NullInt64
	err = db.conn.QueryRowContext(ctx,
		"SELECT MIN(price), MAX(price) FROM properties WHERE deleted_at IS NULL AND status <> 'draft'").
		Scan(&minPrice, &maxPrice)
	if err != nil {
		return 0, 0, err
	}
	return minPrice.Int64, maxPrice.Int64, nil
}

// GetPropertyByID retrieves a non-deleted property by ID
func (db *DB) GetPropertyByID(id string) (*models.Property, error) {
	row := db.conn.QueryRow(
		"SELECT "+propertyColumns+" FROM properties WHERE id = $1 AND deleted_at IS NULL", id)
	return scanProperty(row)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (*models.Property, error) {
	var p models.Property
	var description, areaUnit, location, propertyType, status sql.NullString
	var area sql.NullFloat64
	var deletedAt sql.NullTime
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &description,
		&p.Price, &p.Bedrooms, &p.Bathrooms, &area, &areaUnit, &location, &propertyType,
		&p.Features, &p.Amenities,
		&p.IsFeatured, &p.IsHotProperty, &p.DisplayOrder, &status, &deletedAt,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Area = area.Float64
	p.AreaUnit = areaUnit.String
	p.Location = location.String
	p.PropertyType = propertyType.String
	p.Status = models.PropertyStatus(status.String)
	if deletedAt.Valid {
		t := deletedAt.Time
		p.DeletedAt = &t
	}
	return &p, nil
}

// GetPropertyBySlug retrieves a non-deleted property by slug
func (db *DB) GetPropertyBySlug(slug string) (*models.Property, error) {
	row := db.conn.QueryRow(
		"SELECT "+propertyColumns+" FROM properties WHERE slug = $1 AND deleted_at IS NULL", slug)
	return scanProperty(row)
}

// SimilarProperties returns up to limit listings related to the given
// property, mirroring the GORM implementation.
func (db *DB) SimilarProperties(propertyID string, limit int) ([]models.Property, error) {
	if limit < 1 {
		limit = 3
	}

	source, err := db.GetPropertyByID(propertyID)
	if err != nil {
		return nil, err
	}

	query := "SELECT " + propertyColumns + ` FROM properties
		WHERE deleted_at IS NULL AND status <> 'draft' AND id <> $1
		AND (location = $2 OR property_type = $3)
		ORDER BY is_featured DESC, display_order ASC, id ASC
		LIMIT $4`

	rows, err := db.conn.Query(query, propertyID, source.Location, source.PropertyType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}
