package listing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"property-portal/internal/models"
)

// Pagination mirrors the query API's pagination block. Total reflects
// the full matching count server-side, independent of page size.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ResultPage is one page of matching properties plus the total count
type ResultPage struct {
	Data       []models.Property `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// QueryAPI is the properties query surface consumed by the fetcher
type QueryAPI interface {
	ListProperties(ctx context.Context, params url.Values) (*ResultPage, error)
}

// SimilarAPI is the related-items surface consumed by the resolver
type SimilarAPI interface {
	SimilarProperties(ctx context.Context, propertyID string, limit int) (*ResultPage, error)
}

// Client is the HTTP implementation of the query, similar-properties
// and price-range APIs.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the portal API at baseURL
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithHTTPClient creates a client with a caller-supplied
// http.Client (used by tests and callers with custom transports).
func NewClientWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, httpClient: httpClient}
}

// ListProperties issues the built query and returns a page of results
// plus the total matching count.
func (c *Client) ListProperties(ctx context.Context, params url.Values) (*ResultPage, error) {
	var page ResultPage
	if err := c.getJSON(ctx, "/api/properties", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SimilarProperties fetches related properties for the given listing
func (c *Client) SimilarProperties(ctx context.Context, propertyID string, limit int) (*ResultPage, error) {
	params := url.Values{}
	params.Set("current_property_id", propertyID)
	params.Set("limit", strconv.Itoa(limit))

	var page ResultPage
	if err := c.getJSON(ctx, "/api/properties/similar", params, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PriceRange returns the raw min/max price observed in the catalog.
// Rounding happens in the filter package, not here.
func (c *Client) PriceRange(ctx context.Context) (min, max int64, err error) {
	var resp struct {
		MinPrice int64 `json:"min_price"`
		MaxPrice int64 `json:"max_price"`
	}
	if err := c.getJSON(ctx, "/api/properties/price-range", nil, &resp); err != nil {
		return 0, 0, err
	}
	return resp.MinPrice, resp.MaxPrice, nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s failed with status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return nil
}
