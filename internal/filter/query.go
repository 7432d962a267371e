package filter

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultPageSize is the listing grid page size
const DefaultPageSize = 6

// sortMapping maps a UI sort key to a (sort_by, sort_order) pair.
// Unrecognized keys fall back to the stable default ordering so result
// order is deterministic across requests with identical filters.
var sortMapping = map[string][2]string{
	"featured":   {"is_featured", "desc"},
	"price-low":  {"price", "asc"},
	"price-high": {"price", "desc"},
	"newest":     {"created_at", "desc"},
	"area":       {"area", "desc"},
	"bedrooms":   {"bedrooms", "desc"},
	"title":      {"title", "asc"},
}

const (
	defaultSortBy    = "display_order"
	defaultSortOrder = "asc"
)

// SortPair resolves a sort key to its sort_by/sort_order pair
func SortPair(sortKey string) (sortBy, sortOrder string) {
	if pair, ok := sortMapping[sortKey]; ok {
		return pair[0], pair[1]
	}
	return defaultSortBy, defaultSortOrder
}

// BuildQuery translates criteria plus page-level overrides into the
// normalized parameter set sent to the listing query API.
//
// Rules:
//   - offset = (page-1)*pageSize, limit = pageSize
//   - min_price/max_price appear only when the selected range differs
//     from the full bound (either bound differing emits both)
//   - each non-empty multi-select is a single comma-joined parameter;
//     empty sets are omitted entirely, since omission means
//     "unconstrained", not "match nothing"
//   - free-text search is trimmed and omitted when empty
//   - explicit URL overrides take precedence over the store's value
//     for that dimension
//
// The result serializes byte-identically for identical input:
// url.Values.Encode emits keys in sorted order.
func BuildQuery(c Criteria, bound PriceBound, page, pageSize int, sortKey string, overrides url.Values) url.Values {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(pageSize))
	params.Set("offset", strconv.Itoa((page-1)*pageSize))

	sortBy, sortOrder := SortPair(sortKey)
	params.Set("sort_by", sortBy)
	params.Set("sort_order", sortOrder)

	if !bound.FullRange(c.MinPrice, c.MaxPrice) {
		params.Set("min_price", strconv.FormatInt(c.MinPrice, 10))
		params.Set("max_price", strconv.FormatInt(c.MaxPrice, 10))
	}

	setJoined(params, "location", c.Locations)
	setJoined(params, "property_type", c.Types)
	setJoined(params, "bedrooms", c.Bedrooms)
	setJoined(params, "bathrooms", c.Bathrooms)
	setJoined(params, "features", c.Features)
	setJoined(params, "amenities", c.Amenities)

	if search := strings.TrimSpace(c.Search); search != "" {
		params.Set("search", search)
	}

	// Deep-link overrides (e.g. a pinned is_featured=true page) win
	// over the store's value for that dimension.
	for key, vals := range overrides {
		if len(vals) == 0 || vals[0] == "" {
			continue
		}
		params.Set(key, vals[0])
	}

	return params
}

func setJoined(params url.Values, key string, vals []string) {
	if len(vals) == 0 {
		return
	}
	params.Set(key, strings.Join(vals, ","))
}

// PageCount computes the number of pages for a total match count
func PageCount(total, pageSize int) int {
	if pageSize < 1 || total < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
