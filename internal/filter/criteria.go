package filter

import (
	"net/url"
	"strconv"
	"strings"
)

// Bedroom and bathroom filter tokens. Multiple selections are OR'd.
var (
	BedroomOptions  = []string{"Studio", "1", "2", "3", "4", "5+"}
	BathroomOptions = []string{"1", "2", "3", "4", "5+"}
)

// Criteria is the full set of user-selected search/filter dimensions
// for property listings. Every field defaults to empty/full-range;
// an unset dimension never excludes results.
type Criteria struct {
	MinPrice  int64    `json:"min_price"`
	MaxPrice  int64    `json:"max_price"`
	Bedrooms  []string `json:"bedrooms,omitempty"`
	Bathrooms []string `json:"bathrooms,omitempty"`
	Locations []string `json:"locations,omitempty"`
	Types     []string `json:"types,omitempty"`
	Amenities []string `json:"amenities,omitempty"`
	Features  []string `json:"features,omitempty"`
	Search    string   `json:"search,omitempty"`
}

// Partial carries the fields of a criteria update. Nil fields are left
// untouched by the merge; non-nil fields replace the whole value.
type Partial struct {
	MinPrice  *int64
	MaxPrice  *int64
	Bedrooms  *[]string
	Bathrooms *[]string
	Locations *[]string
	Types     *[]string
	Amenities *[]string
	Features  *[]string
	Search    *string
}

// Clone returns a deep copy so that callers can hand out snapshots
// without sharing the underlying slices.
func (c Criteria) Clone() Criteria {
	out := c
	out.Bedrooms = cloneSlice(c.Bedrooms)
	out.Bathrooms = cloneSlice(c.Bathrooms)
	out.Locations = cloneSlice(c.Locations)
	out.Types = cloneSlice(c.Types)
	out.Amenities = cloneSlice(c.Amenities)
	out.Features = cloneSlice(c.Features)
	return out
}

func cloneSlice(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// FromValues seeds criteria from URL query parameters, so a shared link
// reproduces the same filtered view. Absent parameters mean
// "unconstrained"; the price range falls back to the full bound.
func FromValues(values url.Values, bound PriceBound) Criteria {
	c := Criteria{
		MinPrice: bound.Min,
		MaxPrice: bound.Max,
	}

	if v := values.Get("min_price"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			c.MinPrice = n
		}
	}
	if v := values.Get("max_price"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			c.MaxPrice = n
		}
	}
	if c.MinPrice > c.MaxPrice {
		c.MinPrice, c.MaxPrice = c.MaxPrice, c.MinPrice
	}

	c.Bedrooms = splitParam(values.Get("bedrooms"))
	c.Bathrooms = splitParam(values.Get("bathrooms"))
	c.Locations = splitParam(values.Get("location"))
	c.Types = splitParam(values.Get("property_type"))
	c.Amenities = splitParam(values.Get("amenities"))
	c.Features = splitParam(values.Get("features"))
	c.Search = strings.TrimSpace(values.Get("search"))

	return c
}

// splitParam splits a comma-joined multi-select parameter, dropping
// empty tokens so "a,,b" and "" never produce match-nothing filters.
func splitParam(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
