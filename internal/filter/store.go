package filter

import (
	"net/url"
	"sync"
)

// Store holds the current filter criteria for a browsing session.
// It is seeded from URL query parameters plus the resolved price bound
// and is read by multiple consumers (search bar, filter panel, listing
// grid). Updates replace whole fields, never mutate slices in place,
// so snapshots handed out earlier stay valid.
type Store struct {
	mu          sync.RWMutex
	criteria    Criteria
	bound       PriceBound
	initialized bool
}

// NewStore creates an unseeded store. Consumers must not issue queries
// until Seed has run; see Initialized.
func NewStore() *Store {
	return &Store{}
}

// Seed installs the resolved price bound and any URL-derived values,
// then marks the store initialized. Calling Seed again re-seeds (used
// when navigating to a deep link with different parameters).
func (s *Store) Seed(bound PriceBound, values url.Values) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bound = bound
	s.criteria = FromValues(values, bound)
	s.initialized = true
}

// Initialized reports whether the store has completed seeding from both
// the price bound fetch and URL-derived values. Queries issued before
// this is true would fire with transient default bounds.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Criteria returns a snapshot copy of the current criteria
func (s *Store) Criteria() Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria.Clone()
}

// Bound returns the price bound the store was seeded with
func (s *Store) Bound() PriceBound {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bound
}

// Update merges a partial criteria object into the current state.
// Cross-field consistency is not validated here; callers are
// responsible for supplying valid values.
func (s *Store) Update(p Partial) Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.MinPrice != nil {
		s.criteria.MinPrice = *p.MinPrice
	}
	if p.MaxPrice != nil {
		s.criteria.MaxPrice = *p.MaxPrice
	}
	if p.Bedrooms != nil {
		s.criteria.Bedrooms = cloneSlice(*p.Bedrooms)
	}
	if p.Bathrooms != nil {
		s.criteria.Bathrooms = cloneSlice(*p.Bathrooms)
	}
	if p.Locations != nil {
		s.criteria.Locations = cloneSlice(*p.Locations)
	}
	if p.Types != nil {
		s.criteria.Types = cloneSlice(*p.Types)
	}
	if p.Amenities != nil {
		s.criteria.Amenities = cloneSlice(*p.Amenities)
	}
	if p.Features != nil {
		s.criteria.Features = cloneSlice(*p.Features)
	}
	if p.Search != nil {
		s.criteria.Search = *p.Search
	}

	return s.criteria.Clone()
}

// Clear resets every dimension to its empty/default state, restoring
// the price range to the current bound's full span.
func (s *Store) Clear() Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = Criteria{
		MinPrice: s.bound.Min,
		MaxPrice: s.bound.Max,
	}
	return s.criteria.Clone()
}
