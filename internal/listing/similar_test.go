package listing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-portal/internal/models"
)

type fakeSimilarAPI struct {
	page      *ResultPage
	err       error
	lastID    string
	lastLimit int
}

func (f *fakeSimilarAPI) SimilarProperties(ctx context.Context, propertyID string, limit int) (*ResultPage, error) {
	f.lastID = propertyID
	f.lastLimit = limit
	return f.page, f.err
}

func props(ids ...string) []models.Property {
	out := make([]models.Property, len(ids))
	for i, id := range ids {
		out[i] = models.Property{ID: id}
	}
	return out
}

func TestFindSimilarExcludesSourceProperty(t *testing.T) {
	api := &fakeSimilarAPI{page: &ResultPage{Data: props("src", "a", "b", "c")}}
	resolver := NewSimilarResolver(api)

	got, err := resolver.FindSimilar(context.Background(), "src", 3)
	require.NoError(t, err)

	require.Len(t, got, 3)
	for _, p := range got {
		assert.NotEqual(t, "src", p.ID)
	}
	assert.Equal(t, 4, api.lastLimit, "one extra is requested to absorb a self-match")
	assert.Equal(t, "src", api.lastID)
}

func TestFindSimilarTrimsToCount(t *testing.T) {
	api := &fakeSimilarAPI{page: &ResultPage{Data: props("a", "b", "c", "d")}}
	resolver := NewSimilarResolver(api)

	got, err := resolver.FindSimilar(context.Background(), "src", 3)
	require.NoError(t, err)
	assert.Equal(t, props("a", "b", "c"), got)
}

func TestFindSimilarShortResultIsNotAnError(t *testing.T) {
	api := &fakeSimilarAPI{page: &ResultPage{Data: props("a")}}
	resolver := NewSimilarResolver(api)

	got, err := resolver.FindSimilar(context.Background(), "src", 3)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	api.page = &ResultPage{}
	got, err = resolver.FindSimilar(context.Background(), "src", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFindSimilarWrapsAPIError(t *testing.T) {
	cause := errors.New("timeout")
	api := &fakeSimilarAPI{err: cause}
	resolver := NewSimilarResolver(api)

	got, err := resolver.FindSimilar(context.Background(), "src", 3)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to fetch similar properties")
}

func TestFindSimilarZeroCount(t *testing.T) {
	api := &fakeSimilarAPI{}
	resolver := NewSimilarResolver(api)

	got, err := resolver.FindSimilar(context.Background(), "src", 0)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Empty(t, api.lastID, "no request should be issued for a zero count")
}
