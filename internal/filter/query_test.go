package filter

import (
	"math/rand"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQueryPagination(t *testing.T) {
	bound := PriceBound{Min: 0, Max: 2_000_000}
	c := Criteria{MinPrice: bound.Min, MaxPrice: bound.Max}

	params := BuildQuery(c, bound, 3, 6, "", nil)
	assert.Equal(t, "6", params.Get("limit"))
	assert.Equal(t, "12", params.Get("offset"))

	// Page below 1 clamps to the first page
	params = BuildQuery(c, bound, 0, 6, "", nil)
	assert.Equal(t, "0", params.Get("offset"))
}

func TestBuildQuerySortMapping(t *testing.T) {
	tests := []struct {
		key       string
		sortBy    string
		sortOrder string
	}{
		{"featured", "is_featured", "desc"},
		{"price-low", "price", "asc"},
		{"price-high", "price", "desc"},
		{"newest", "created_at", "desc"},
		{"area", "area", "desc"},
		{"bedrooms", "bedrooms", "desc"},
		{"title", "title", "asc"},
		{"", "display_order", "asc"},
		{"bogus", "display_order", "asc"},
	}

	bound := PriceBound{Min: 0, Max: 1_000_000}
	c := Criteria{MinPrice: bound.Min, MaxPrice: bound.Max}
	for _, tt := range tests {
		params := BuildQuery(c, bound, 1, 6, tt.key, nil)
		assert.Equal(t, tt.sortBy, params.Get("sort_by"), "sort key %q", tt.key)
		assert.Equal(t, tt.sortOrder, params.Get("sort_order"), "sort key %q", tt.key)
	}
}

func TestBuildQueryOmitsEmptyDimensions(t *testing.T) {
	bound := PriceBound{Min: 0, Max: 2_000_000}
	c := Criteria{
		MinPrice:  bound.Min,
		MaxPrice:  bound.Max,
		Locations: []string{},
		Search:    "   ",
	}

	params := BuildQuery(c, bound, 1, 6, "", nil)

	for _, key := range []string{"location", "property_type", "bedrooms", "bathrooms", "features", "amenities", "search", "min_price", "max_price"} {
		_, present := params[key]
		assert.False(t, present, "%s must be omitted entirely, not sent empty", key)
	}
}

func TestBuildQueryPriceElision(t *testing.T) {
	bound := PriceBound{Min: 0, Max: 2_000_000}

	// Full range: both bounds omitted
	c := Criteria{MinPrice: 0, MaxPrice: 2_000_000}
	params := BuildQuery(c, bound, 1, 6, "", nil)
	assert.Empty(t, params.Get("min_price"))
	assert.Empty(t, params.Get("max_price"))

	// One bound differing emits both
	c.MaxPrice = 1_500_000
	params = BuildQuery(c, bound, 1, 6, "", nil)
	assert.Equal(t, "0", params.Get("min_price"))
	assert.Equal(t, "1500000", params.Get("max_price"))

	c = Criteria{MinPrice: 100_000, MaxPrice: 2_000_000}
	params = BuildQuery(c, bound, 1, 6, "", nil)
	assert.Equal(t, "100000", params.Get("min_price"))
	assert.Equal(t, "2000000", params.Get("max_price"))
}

func TestBuildQueryMultiSelectJoining(t *testing.T) {
	bound := PriceBound{Min: 0, Max: 2_000_000}
	c := Criteria{
		MinPrice:  bound.Min,
		MaxPrice:  bound.Max,
		Bedrooms:  []string{"2", "3"},
		Locations: []string{"Downtown", "Marina District"},
		Amenities: []string{"Pool"},
	}

	params := BuildQuery(c, bound, 1, 6, "", nil)
	assert.Equal(t, "2,3", params.Get("bedrooms"))
	assert.Equal(t, "Downtown,Marina District", params.Get("location"))
	assert.Equal(t, "Pool", params.Get("amenities"))
}

func TestBuildQueryOverridesTakePrecedence(t *testing.T) {
	bound := PriceBound{Min: 0, Max: 2_000_000}
	c := Criteria{
		MinPrice: bound.Min,
		MaxPrice: bound.Max,
		Types:    []string{"Apartment"},
	}

	overrides := url.Values{}
	overrides.Set("property_type", "Villa")
	overrides.Set("is_featured", "true")

	params := BuildQuery(c, bound, 1, 6, "", overrides)
	assert.Equal(t, "Villa", params.Get("property_type"))
	assert.Equal(t, "true", params.Get("is_featured"))
}

func TestBuildQueryDeterminism(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	bound := PriceBound{Min: 0, Max: 5_000_000}

	pick := func(opts []string) []string {
		var out []string
		for _, o := range opts {
			if rng.Intn(2) == 0 {
				out = append(out, o)
			}
		}
		return out
	}

	for i := 0; i < 200; i++ {
		c := Criteria{
			MinPrice:  int64(rng.Intn(3_000_000)),
			MaxPrice:  int64(3_000_000 + rng.Intn(2_000_000)),
			Bedrooms:  pick(BedroomOptions),
			Bathrooms: pick(BathroomOptions),
			Locations: pick([]string{"Downtown", "Marina", "Suburbs"}),
			Types:     pick([]string{"Apartment", "Villa", "Townhouse"}),
			Amenities: pick([]string{"Pool", "Gym"}),
			Features:  pick([]string{"Balcony", "Garden"}),
			Search:    []string{"", "marina", "sea view"}[rng.Intn(3)],
		}
		page := 1 + rng.Intn(9)
		sortKey := []string{"", "featured", "price-low", "newest"}[rng.Intn(4)]

		first := BuildQuery(c, bound, page, 6, sortKey, nil).Encode()
		second := BuildQuery(c, bound, page, 6, sortKey, nil).Encode()
		require.Equal(t, first, second, "identical input must serialize byte-identically")
	}
}

// PriceBound resolves to {0, 2M}; the user narrows price, picks two
// bedroom counts and types a search term. The built query carries
// exactly those dimensions, and a 7-item result paginates to 2 pages.
func TestMarinaSearchScenario(t *testing.T) {
	bound := PriceBound{Min: 0, Max: 2_000_000}

	store := NewStore()
	store.Seed(bound, nil)

	minPrice := int64(500_000)
	maxPrice := int64(1_500_000)
	bedrooms := []string{"2", "3"}
	search := "marina"
	store.Update(Partial{
		MinPrice: &minPrice,
		MaxPrice: &maxPrice,
		Bedrooms: &bedrooms,
		Search:   &search,
	})

	params := BuildQuery(store.Criteria(), store.Bound(), 1, 6, "", nil)

	assert.Equal(t, "500000", params.Get("min_price"))
	assert.Equal(t, "1500000", params.Get("max_price"))
	assert.Equal(t, "2,3", params.Get("bedrooms"))
	assert.Equal(t, "marina", params.Get("search"))
	assert.Equal(t, "6", params.Get("limit"))
	assert.Equal(t, "0", params.Get("offset"))

	for _, key := range []string{"location", "amenities", "features"} {
		_, present := params[key]
		assert.False(t, present, "%s must not be present", key)
	}

	assert.Equal(t, 2, PageCount(7, 6))
}

func TestClearFiltersRoundTrip(t *testing.T) {
	bound := PriceBound{Min: 0, Max: 2_000_000}

	store := NewStore()
	store.Seed(bound, nil)
	baseline := BuildQuery(store.Criteria(), bound, 1, 6, "newest", nil).Encode()

	search := "marina"
	bedrooms := []string{"3"}
	maxPrice := int64(900_000)
	store.Update(Partial{Search: &search, Bedrooms: &bedrooms, MaxPrice: &maxPrice})

	store.Clear()
	cleared := BuildQuery(store.Criteria(), bound, 1, 6, "newest", nil).Encode()

	assert.Equal(t, baseline, cleared, "clear must restore the no-filters baseline")

	// Clear is idempotent
	store.Clear()
	assert.Equal(t, baseline, BuildQuery(store.Criteria(), bound, 1, 6, "newest", nil).Encode())
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, PageCount(0, 6))
	assert.Equal(t, 1, PageCount(1, 6))
	assert.Equal(t, 1, PageCount(6, 6))
	assert.Equal(t, 2, PageCount(7, 6))
	assert.Equal(t, 0, PageCount(10, 0))
}
