package catalog

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelgo/models"
)

type fakeCatalogAPI struct {
	mu      sync.Mutex
	queries []url.Values
	results [][]models.TravelService
	block   chan struct{}
}

func (f *fakeCatalogAPI) Categories(context.Context) ([]models.Category, error) {
	return []models.Category{{ID: 1, Name: "Beach"}}, nil
}

func (f *fakeCatalogAPI) Services(_ context.Context, query url.Values) ([]models.TravelService, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	call := len(f.queries) - 1
	var result []models.TravelService
	if call < len(f.results) {
		result = f.results[call]
	}
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return result, nil
}

func (f *fakeCatalogAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeCatalogAPI) query(i int) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[i]
}

type updateRecorder struct {
	mu      sync.Mutex
	updates []Update
}

func (r *updateRecorder) record(u Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}

func (r *updateRecorder) snapshot() []Update {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Update(nil), r.updates...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestEngineDebouncesRapidEdits(t *testing.T) {
	api := &fakeCatalogAPI{}
	rec := &updateRecorder{}
	engine := NewEngine(api, 40*time.Millisecond, rec.record)
	defer engine.Close()

	// Rapid keystrokes inside the quiet period collapse into one fetch
	// carrying only the final state.
	engine.SetQuery("Đ")
	time.Sleep(10 * time.Millisecond)
	engine.SetQuery("Đà")
	time.Sleep(10 * time.Millisecond)
	engine.SetQuery("Đà Lạt")

	waitFor(t, func() bool { return api.callCount() == 1 })
	assert.Equal(t, "Đà Lạt", api.query(0).Get("search"))

	// Nothing further fires without new edits.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, api.callCount())
}

func TestEngineSeparateQuietPeriodsFetchSeparately(t *testing.T) {
	api := &fakeCatalogAPI{}
	rec := &updateRecorder{}
	engine := NewEngine(api, 20*time.Millisecond, rec.record)
	defer engine.Close()

	engine.SetQuery("beach")
	waitFor(t, func() bool { return api.callCount() == 1 })

	engine.SetCategory("3")
	waitFor(t, func() bool { return api.callCount() == 2 })

	q := api.query(1)
	assert.Equal(t, "beach", q.Get("search"))
	assert.Equal(t, "3", q.Get("category_id"))
}

func TestEngineDropsStaleResponse(t *testing.T) {
	first := make(chan struct{})
	api := &fakeCatalogAPI{
		block: first,
		results: [][]models.TravelService{
			{{ID: 1, Name: "stale"}},
			{{ID: 2, Name: "fresh"}},
		},
	}
	rec := &updateRecorder{}
	engine := NewEngine(api, 10*time.Millisecond, rec.record)
	defer engine.Close()

	// First fetch goes out and stalls on the fake.
	engine.SetQuery("old")
	waitFor(t, func() bool { return api.callCount() == 1 })

	// Second fetch completes while the first is still in flight.
	api.mu.Lock()
	api.block = nil
	api.mu.Unlock()
	engine.SetQuery("new")
	waitFor(t, func() bool { return api.callCount() == 2 })
	waitFor(t, func() bool { return len(rec.snapshot()) == 1 })

	// Release the stale response; it must be discarded, not delivered.
	close(first)
	time.Sleep(50 * time.Millisecond)

	updates := rec.snapshot()
	require.Len(t, updates, 1)
	require.Len(t, updates[0].Services, 1)
	assert.Equal(t, "fresh", updates[0].Services[0].Name)
	assert.False(t, engine.Loading())
}

func TestEngineStagedFilterDiscipline(t *testing.T) {
	api := &fakeCatalogAPI{}
	engine := NewEngine(api, 10*time.Millisecond, nil)
	defer engine.Close()

	engine.SetQuery("beach")
	waitFor(t, func() bool { return api.callCount() == 1 })

	// Modal edits touch the staged copy only.
	engine.StageFilter()
	engine.EditStaged(func(f *SearchFilter) {
		f.MinPrice = "100000"
		f.Location = "Huế"
	})
	assert.Empty(t, engine.Filter().MinPrice)
	assert.Equal(t, "100000", engine.Staged().MinPrice)

	// Discarding the modal means never applying; nothing fetched.
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, 1, api.callCount())

	// Applying promotes the staged copy and fetches with it.
	engine.ApplyStaged()
	waitFor(t, func() bool { return api.callCount() == 2 })
	q := api.query(1)
	assert.Equal(t, "beach", q.Get("search"))
	assert.Equal(t, "100000", q.Get("min_price"))
	assert.Equal(t, "Huế", q.Get("location"))
}

func TestEngineCloseSuppressesPendingFetch(t *testing.T) {
	api := &fakeCatalogAPI{}
	engine := NewEngine(api, 30*time.Millisecond, nil)

	engine.SetQuery("beach")
	engine.Close()

	time.Sleep(80 * time.Millisecond)
	assert.Zero(t, api.callCount())
}

func TestEngineLoadCategories(t *testing.T) {
	api := &fakeCatalogAPI{}
	engine := NewEngine(api, time.Second, nil)
	defer engine.Close()

	cats, err := engine.LoadCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Beach", cats[0].Name)

	// Category load never schedules a search fetch.
	assert.Zero(t, api.callCount())
}
