package listing

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"property-portal/internal/filter"
	"property-portal/internal/models"
)

// fakeQueryAPI answers each request after a per-search delay, ignoring
// context cancellation, so tests can force slow responses to arrive
// after fast ones.
type fakeQueryAPI struct {
	mu     sync.Mutex
	delays map[string]time.Duration
	totals map[string]int
	err    error
	calls  []url.Values
}

func newFakeQueryAPI() *fakeQueryAPI {
	return &fakeQueryAPI{
		delays: make(map[string]time.Duration),
		totals: make(map[string]int),
	}
}

func (f *fakeQueryAPI) ListProperties(ctx context.Context, params url.Values) (*ResultPage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, params)
	delay := f.delays[params.Get("search")]
	total := f.totals[params.Get("search")]
	err := f.err
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	return &ResultPage{
		Data: []models.Property{{ID: "p-" + params.Get("search"), Title: params.Get("search")}},
		Pagination: Pagination{
			Limit:  6,
			Offset: 0,
			Total:  total,
		},
	}, nil
}

func (f *fakeQueryAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func seededStore(t *testing.T) *filter.Store {
	t.Helper()
	store := filter.NewStore()
	store.Seed(filter.PriceBound{Min: 0, Max: 2_000_000}, nil)
	return store
}

func setSearch(store *filter.Store, term string) {
	store.Update(filter.Partial{Search: &term})
}

func TestRefreshNoopBeforeStoreSeeded(t *testing.T) {
	api := newFakeQueryAPI()
	store := filter.NewStore()
	fetcher := NewFetcher(api, store, 6)

	<-fetcher.Refresh(context.Background())

	assert.Equal(t, 0, api.callCount(), "no request may fire before the store is seeded")
	assert.False(t, fetcher.State().Loading)
}

func TestRefreshCommitsResult(t *testing.T) {
	api := newFakeQueryAPI()
	api.totals[""] = 7

	store := seededStore(t)
	fetcher := NewFetcher(api, store, 6)

	<-fetcher.Refresh(context.Background())

	state := fetcher.State()
	require.NotNil(t, state.Page)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
	assert.Equal(t, 7, state.Page.Pagination.Total)
	assert.Equal(t, 2, state.PageCount(6))
}

func TestStaleResponseNeverOverwritesNewerResult(t *testing.T) {
	api := newFakeQueryAPI()
	api.delays["slow"] = 400 * time.Millisecond
	api.delays["fast"] = 30 * time.Millisecond
	api.totals["slow"] = 99
	api.totals["fast"] = 1

	store := seededStore(t)
	fetcher := NewFetcher(api, store, 6)

	setSearch(store, "slow")
	slowDone := fetcher.Refresh(context.Background())

	setSearch(store, "fast")
	fastDone := fetcher.Refresh(context.Background())

	<-fastDone
	<-slowDone

	state := fetcher.State()
	require.NotNil(t, state.Page)
	assert.Equal(t, 1, state.Page.Pagination.Total,
		"the later request's result must win regardless of arrival order")
	assert.Equal(t, "fast", state.Page.Data[0].Title)
	assert.False(t, state.Loading)
	assert.Empty(t, state.Err)
}

func TestFilterChangeResetsPage(t *testing.T) {
	api := newFakeQueryAPI()
	store := seededStore(t)
	fetcher := NewFetcher(api, store, 6)

	<-fetcher.Refresh(context.Background())

	fetcher.SetPage(3)
	<-fetcher.Refresh(context.Background())
	assert.Equal(t, 3, fetcher.Page(), "page navigation alone keeps the page")

	setSearch(store, "villa")
	<-fetcher.Refresh(context.Background())
	assert.Equal(t, 1, fetcher.Page(), "a filter change must reset to page 1")
}

func TestSortChangeKeepsPage(t *testing.T) {
	api := newFakeQueryAPI()
	store := seededStore(t)
	fetcher := NewFetcher(api, store, 6)

	<-fetcher.Refresh(context.Background())
	fetcher.SetPage(2)
	<-fetcher.Refresh(context.Background())

	fetcher.SetSort("price-low")
	<-fetcher.Refresh(context.Background())
	assert.Equal(t, 2, fetcher.Page(), "a sort change must not reset pagination")
}

func TestDeepLinkedPageSurvivesFirstRefresh(t *testing.T) {
	api := newFakeQueryAPI()
	store := seededStore(t)
	fetcher := NewFetcher(api, store, 6)
	fetcher.SetPage(4)

	<-fetcher.Refresh(context.Background())
	assert.Equal(t, 4, fetcher.Page())
}

func TestIdenticalQueryIsSkipped(t *testing.T) {
	api := newFakeQueryAPI()
	store := seededStore(t)
	fetcher := NewFetcher(api, store, 6)

	<-fetcher.Refresh(context.Background())
	<-fetcher.Refresh(context.Background())
	<-fetcher.Refresh(context.Background())

	assert.Equal(t, 1, api.callCount(), "unchanged state must not re-fetch")
}

func TestErrorRetainsLastKnownGoodResults(t *testing.T) {
	api := newFakeQueryAPI()
	api.totals[""] = 12

	store := seededStore(t)
	fetcher := NewFetcher(api, store, 6)

	<-fetcher.Refresh(context.Background())
	require.NotNil(t, fetcher.State().Page)

	api.mu.Lock()
	api.err = errors.New("upstream down")
	api.mu.Unlock()

	setSearch(store, "broken")
	<-fetcher.Refresh(context.Background())

	state := fetcher.State()
	assert.NotEmpty(t, state.Err)
	require.NotNil(t, state.Page, "previous results stay visible behind the error banner")
	assert.Equal(t, 12, state.Page.Pagination.Total)
	assert.False(t, state.Loading)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	api := newFakeQueryAPI()
	store := seededStore(t)
	fetcher := NewFetcher(api, store, 6)

	<-fetcher.Refresh(context.Background())
	<-fetcher.Refresh(context.Background())
	require.Equal(t, 1, api.callCount())

	fetcher.Invalidate()
	<-fetcher.Refresh(context.Background())
	assert.Equal(t, 2, api.callCount())
}

func TestOverrideChangeResetsPage(t *testing.T) {
	api := newFakeQueryAPI()
	store := seededStore(t)
	fetcher := NewFetcher(api, store, 6)

	<-fetcher.Refresh(context.Background())
	fetcher.SetPage(5)
	<-fetcher.Refresh(context.Background())
	require.Equal(t, 5, fetcher.Page())

	overrides := url.Values{}
	overrides.Set("is_featured", "true")
	fetcher.SetOverrides(overrides)
	<-fetcher.Refresh(context.Background())

	assert.Equal(t, 1, fetcher.Page())
	api.mu.Lock()
	last := api.calls[len(api.calls)-1]
	api.mu.Unlock()
	assert.Equal(t, "true", last.Get("is_featured"))
}
