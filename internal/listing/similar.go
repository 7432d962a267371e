package listing

import (
	"context"
	"fmt"

	"property-portal/internal/models"
)

// SimilarResolver fetches a small set of related properties for a
// listing detail page.
type SimilarResolver struct {
	api SimilarAPI
}

// NewSimilarResolver creates a resolver over the given API
func NewSimilarResolver(api SimilarAPI) *SimilarResolver {
	return &SimilarResolver{api: api}
}

// FindSimilar returns up to count properties related to propertyID.
// The source property is never included, even if the backing query
// returns it; the server-side exclusion is not trusted alone. Fewer
// than count results is not an error, and zero results means the
// caller should hide the similar-properties section entirely.
func (r *SimilarResolver) FindSimilar(ctx context.Context, propertyID string, count int) ([]models.Property, error) {
	if count < 1 {
		return nil, nil
	}

	// Request one extra so a self-match in the response does not leave
	// the section one item short.
	page, err := r.api.SimilarProperties(ctx, propertyID, count+1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch similar properties: %w", err)
	}

	out := make([]models.Property, 0, count)
	for _, p := range page.Data {
		if p.ID == propertyID {
			continue
		}
		out = append(out, p)
		if len(out) == count {
			break
		}
	}
	return out, nil
}
