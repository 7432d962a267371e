package listing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientListPropertiesPassesParams(t *testing.T) {
	var gotPath string
	var gotQuery url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[{"id":"p1","title":"Marina Loft"}],"pagination":{"limit":6,"offset":6,"total":13}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	params := url.Values{}
	params.Set("search", "marina")
	params.Set("bedrooms", "2,3")
	params.Set("limit", "6")
	params.Set("offset", "6")

	page, err := client.ListProperties(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, "/api/properties", gotPath)
	assert.Equal(t, "marina", gotQuery.Get("search"))
	assert.Equal(t, "2,3", gotQuery.Get("bedrooms"))
	assert.Equal(t, "6", gotQuery.Get("offset"))

	require.Len(t, page.Data, 1)
	assert.Equal(t, "Marina Loft", page.Data[0].Title)
	assert.Equal(t, 13, page.Pagination.Total)
}

func TestClientSimilarProperties(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		assert.Equal(t, "/api/properties/similar", r.URL.Path)
		w.Write([]byte(`{"data":[],"pagination":{"limit":4,"offset":0,"total":0}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.SimilarProperties(context.Background(), "prop-9", 4)
	require.NoError(t, err)

	assert.Equal(t, "prop-9", gotQuery.Get("current_property_id"))
	assert.Equal(t, "4", gotQuery.Get("limit"))
}

func TestClientPriceRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/properties/price-range", r.URL.Path)
		w.Write([]byte(`{"min_price":320000,"max_price":1780000}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	min, max, err := client.PriceRange(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(320_000), min)
	assert.Equal(t, int64(1_780_000), max)
}

func TestClientNonOKStatusIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.ListProperties(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClientMalformedBodyIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, _, err := client.PriceRange(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}
