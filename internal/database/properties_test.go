package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomTokenCondition(t *testing.T) {
	t.Run("empty tokens produce no condition", func(t *testing.T) {
		cond, args := roomTokenCondition("bedrooms", nil)
		assert.Empty(t, cond)
		assert.Nil(t, args)
	})

	t.Run("studio matches zero", func(t *testing.T) {
		cond, args := roomTokenCondition("bedrooms", []string{"Studio"})
		assert.Equal(t, "(bedrooms = 0)", cond)
		assert.Empty(t, args)
	})

	t.Run("plus token is open-ended", func(t *testing.T) {
		cond, args := roomTokenCondition("bathrooms", []string{"5+"})
		assert.Equal(t, "(bathrooms >= ?)", cond)
		assert.Equal(t, []interface{}{5}, args)
	})

	t.Run("selections are OR'd within the dimension", func(t *testing.T) {
		cond, args := roomTokenCondition("bedrooms", []string{"Studio", "2", "5+"})
		assert.Equal(t, "(bedrooms = 0 OR bedrooms = ? OR bedrooms >= ?)", cond)
		assert.Equal(t, []interface{}{2, 5}, args)
	})

	t.Run("unknown tokens are skipped", func(t *testing.T) {
		cond, args := roomTokenCondition("bedrooms", []string{"garbage", "3"})
		assert.Equal(t, "(bedrooms = ?)", cond)
		assert.Equal(t, []interface{}{3}, args)

		cond, _ = roomTokenCondition("bedrooms", []string{"garbage"})
		assert.Empty(t, cond, "all-invalid tokens must not produce a match-nothing clause")
	})
}

func TestJSONListCondition(t *testing.T) {
	cond, args := jsonListCondition("amenities", nil)
	assert.Empty(t, cond)
	assert.Nil(t, args)

	cond, args = jsonListCondition("amenities", []string{"Pool"})
	assert.Equal(t, "(JSON_CONTAINS(amenities, JSON_QUOTE(?)))", cond)
	assert.Equal(t, []interface{}{"Pool"}, args)

	cond, args = jsonListCondition("features", []string{"Balcony", "Garden"})
	assert.Equal(t, "(JSON_CONTAINS(features, JSON_QUOTE(?)) OR JSON_CONTAINS(features, JSON_QUOTE(?)))", cond)
	require.Len(t, args, 2)
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		sortBy    string
		sortOrder string
		want      string
	}{
		{"price", "asc", "price ASC, display_order ASC, id ASC"},
		{"price", "desc", "price DESC, display_order ASC, id ASC"},
		{"created_at", "DESC", "created_at DESC, display_order ASC, id ASC"},
		{"display_order", "asc", "display_order ASC, id ASC"},
		{"", "", "display_order ASC, id ASC"},
		{"drop table", "asc", "display_order ASC, id ASC"},
		{"is_featured", "desc", "is_featured DESC, display_order ASC, id ASC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, orderClause(tt.sortBy, tt.sortOrder),
			"sort_by=%q sort_order=%q", tt.sortBy, tt.sortOrder)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Marina Bay Penthouse", "marina-bay-penthouse"},
		{"  Spacious 3BR — Sea View!  ", "spacious-3br-sea-view"},
		{"Penthouse #42 @ The Towers", "penthouse-42-the-towers"},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.title), "title %q", tt.title)
	}
}
