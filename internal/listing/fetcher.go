package listing

import (
	"context"
	"net/url"
	"sync"

	"property-portal/internal/filter"
)

// State is the fetcher's consumer-visible state. On error the previous
// page is retained (last-known-good) so the UI can keep results visible
// behind an error banner.
type State struct {
	Loading bool
	Err     string
	Page    *ResultPage
}

// PageCount computes the number of pages from the total and page size
func (s State) PageCount(pageSize int) int {
	if s.Page == nil {
		return 0
	}
	return filter.PageCount(s.Page.Pagination.Total, pageSize)
}

// Fetcher turns query parameters into result pages with
// last-request-wins ordering. Filter edits, pagination and sort changes
// can each trigger a new fetch in rapid succession (a user dragging a
// price slider); only the response matching the most recently issued
// request may update visible state. Stale responses are discarded
// silently, and the prior in-flight request is cancelled outright.
type Fetcher struct {
	api   QueryAPI
	store *filter.Store

	mu        sync.Mutex
	seq       uint64
	page      int
	pageSize  int
	sortKey   string
	overrides url.Values

	filterKeySet  bool
	lastFilterKey string
	lastQuery     string
	cancel        context.CancelFunc

	state State
}

// NewFetcher creates a fetcher bound to a filter store
func NewFetcher(api QueryAPI, store *filter.Store, pageSize int) *Fetcher {
	if pageSize < 1 {
		pageSize = filter.DefaultPageSize
	}
	return &Fetcher{
		api:      api,
		store:    store,
		page:     1,
		pageSize: pageSize,
	}
}

// State returns a snapshot of the current fetch state
func (f *Fetcher) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Page returns the current page number
func (f *Fetcher) Page() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.page
}

// SetPage navigates to the given page. Page navigation never resets
// filters; the next Refresh fetches the requested page.
func (f *Fetcher) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	f.mu.Lock()
	f.page = page
	f.mu.Unlock()
}

// SetSort selects the sort key for subsequent fetches
func (f *Fetcher) SetSort(sortKey string) {
	f.mu.Lock()
	f.sortKey = sortKey
	f.mu.Unlock()
}

// SetOverrides installs page-level URL parameters that take precedence
// over the store's values (e.g. a deep link pinning is_featured=true).
func (f *Fetcher) SetOverrides(overrides url.Values) {
	f.mu.Lock()
	f.overrides = overrides
	f.mu.Unlock()
}

// closedChan is returned for no-op refreshes so callers can always wait
var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Refresh issues a fetch for the current page, sort and filter state.
// It returns a channel closed when this request has been resolved
// (committed, superseded or cancelled).
//
// Semantics:
//   - no-op while the store is uninitialized, so no request fires with
//     transient default bounds
//   - a filter or override change while on page N resets the effective
//     page to 1 before the fetch; page navigation alone does not
//   - a query identical to the previously issued one is skipped,
//     treating semantically-equal state as the same trigger
//   - an in-flight earlier request is cancelled and its response, if it
//     arrives anyway, is discarded by sequence check
func (f *Fetcher) Refresh(ctx context.Context) <-chan struct{} {
	f.mu.Lock()

	if !f.store.Initialized() {
		f.mu.Unlock()
		return closedChan
	}

	criteria := f.store.Criteria()
	bound := f.store.Bound()

	fk := filterKey(criteria, bound, f.overrides)
	if !f.filterKeySet {
		// First refresh establishes the baseline; a deep-linked page
		// number must survive it.
		f.filterKeySet = true
		f.lastFilterKey = fk
	} else if fk != f.lastFilterKey {
		f.page = 1
		f.lastFilterKey = fk
	}

	query := filter.BuildQuery(criteria, bound, f.page, f.pageSize, f.sortKey, f.overrides)
	encoded := query.Encode()
	if encoded == f.lastQuery {
		f.mu.Unlock()
		return closedChan
	}
	f.lastQuery = encoded

	if f.cancel != nil {
		f.cancel()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	f.cancel = cancel

	f.seq++
	seq := f.seq
	f.state.Loading = true
	f.state.Err = ""
	f.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		page, err := f.api.ListProperties(fetchCtx, query)

		f.mu.Lock()
		defer f.mu.Unlock()
		if seq != f.seq {
			// A newer request was issued; this response is stale
			return
		}
		f.state.Loading = false
		if err != nil {
			if fetchCtx.Err() != nil {
				return
			}
			f.state.Err = "Failed to load properties. Please adjust your filters or try again."
			return
		}
		f.state.Page = page
		f.state.Err = ""
	}()
	return done
}

// Invalidate forces the next Refresh to fetch even if the query string
// is unchanged (used after a failed request, since the user must
// re-trigger rather than rely on automatic retries).
func (f *Fetcher) Invalidate() {
	f.mu.Lock()
	f.lastQuery = ""
	f.mu.Unlock()
}

// Close cancels any in-flight fetch. Used when the consuming view goes
// away, so no state update lands for a view no longer displayed.
func (f *Fetcher) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.seq++
}

// filterKey is the stable serialization of the filter dimensions and
// overrides, excluding pagination and sort. Page resets key off this:
// sort and page changes re-fetch but never send the user back to
// page 1.
func filterKey(c filter.Criteria, bound filter.PriceBound, overrides url.Values) string {
	v := filter.BuildQuery(c, bound, 1, 1, "", overrides)
	v.Del("limit")
	v.Del("offset")
	v.Del("sort_by")
	v.Del("sort_order")
	return v.Encode()
}
