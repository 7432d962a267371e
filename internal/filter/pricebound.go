package filter

import (
	"context"
	"log"
	"sync"
)

// FallbackMaxPrice is the ceiling used when the catalog is empty or the
// price range read fails. The store must always receive a usable range.
const FallbackMaxPrice = 10_000_000

// PriceBound is the resolved, display-rounded minimum/maximum price
// used as slider/range defaults.
type PriceBound struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// DefaultPriceBound is the fallback span for an empty catalog.
func DefaultPriceBound() PriceBound {
	return PriceBound{Min: 0, Max: FallbackMaxPrice}
}

// FullRange reports whether the given range covers the whole bound,
// i.e. is semantically equivalent to "no price filter".
func (b PriceBound) FullRange(min, max int64) bool {
	return min == b.Min && max == b.Max
}

// PriceReader reads the raw minimum/maximum price over non-deleted
// listings. Implemented by the database layer and the API client.
type PriceReader interface {
	PriceRange(ctx context.Context) (min, max int64, err error)
}

// BoundResolver fetches the catalog price range once per session and
// rounds it outward to clean slider endpoints.
type BoundResolver struct {
	reader PriceReader

	once  sync.Once
	bound PriceBound
}

// NewBoundResolver creates a resolver over the given reader
func NewBoundResolver(reader PriceReader) *BoundResolver {
	return &BoundResolver{reader: reader}
}

// Resolve returns the rounded bound, fetching it on first use and
// caching it for the lifetime of the resolver. On read failure or an
// empty catalog it falls back to the default span.
func (r *BoundResolver) Resolve(ctx context.Context) PriceBound {
	r.once.Do(func() {
		min, max, err := r.reader.PriceRange(ctx)
		if err != nil {
			log.Printf("[PriceBound] range read failed, using default span: %v", err)
			r.bound = DefaultPriceBound()
			return
		}
		if max <= 0 {
			// Empty catalog
			r.bound = DefaultPriceBound()
			return
		}
		r.bound = RoundBound(min, max)
	})
	return r.bound
}

// RoundBound rounds the minimum down and the maximum up to
// human-friendly increments. The step scales with each value's
// magnitude: finer for sub-million prices, coarser above.
func RoundBound(min, max int64) PriceBound {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	b := PriceBound{
		Min: roundDown(min, priceStep(min)),
		Max: roundUp(max, priceStep(max)),
	}
	if b.Min > b.Max {
		b.Min = b.Max
	}
	return b
}

func priceStep(v int64) int64 {
	switch {
	case v <= 1_000_000:
		return 50_000
	case v <= 10_000_000:
		return 250_000
	default:
		return 1_000_000
	}
}

func roundDown(v, step int64) int64 {
	return (v / step) * step
}

func roundUp(v, step int64) int64 {
	if v%step == 0 {
		return v
	}
	return (v/step + 1) * step
}
