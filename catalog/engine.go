// File: travelgo/catalog/engine.go
package catalog

import (
	"context"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"travelgo/models"
	"travelgo/utils"
)

// CatalogAPI is the slice of the REST client the engine needs.
type CatalogAPI interface {
	Categories(ctx context.Context) ([]models.Category, error)
	Services(ctx context.Context, query url.Values) ([]models.TravelService, error)
}

// Update carries the result of one settled fetch.
type Update struct {
	Seq      uint64
	Services []models.TravelService
	Err      error
}

// Engine runs debounced, multi-filter search against the remote
// catalog. Filter edits restart a quiet-period timer (trailing-edge
// debounce); only the state at the moment the quiet period elapses
// reaches the network. Responses carry a monotonic sequence number and
// anything older than the newest applied response is dropped, so a
// slow stale request can never overwrite a fresher result.
type Engine struct {
	api     CatalogAPI
	quiet   time.Duration
	deliver func(Update)

	mu      sync.Mutex
	filter  SearchFilter
	staged  SearchFilter
	timer   *time.Timer
	issued  uint64
	applied uint64
	loading bool
	closed  bool
}

// NewEngine builds an engine delivering settled results through the
// given callback. A non-positive quiet period falls back to 500ms.
func NewEngine(api CatalogAPI, quiet time.Duration, deliver func(Update)) *Engine {
	if quiet <= 0 {
		quiet = 500 * time.Millisecond
	}
	return &Engine{api: api, quiet: quiet, deliver: deliver}
}

// LoadCategories fetches the category list. It is issued once per
// screen activation, independently of the filter, and its failure must
// not block the service list (and vice versa).
func (e *Engine) LoadCategories(ctx context.Context) ([]models.Category, error) {
	return e.api.Categories(ctx)
}

// Filter returns the active filter.
func (e *Engine) Filter() SearchFilter {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filter
}

// Loading reports whether a fetch is outstanding.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// SetQuery updates the free-text query and restarts the quiet period.
func (e *Engine) SetQuery(q string) {
	e.mutate(func(f *SearchFilter) { f.Query = q })
}

// SetCategory updates the category constraint ("" clears it) and
// restarts the quiet period.
func (e *Engine) SetCategory(id string) {
	e.mutate(func(f *SearchFilter) { f.CategoryID = id })
}

// StageFilter snapshots the active filter for modal editing. Edits to
// the staged copy do not touch the active filter until ApplyStaged.
func (e *Engine) StageFilter() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.staged = e.filter
}

// Staged returns the staged copy.
func (e *Engine) Staged() SearchFilter {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.staged
}

// EditStaged mutates the staged copy only.
func (e *Engine) EditStaged(fn func(f *SearchFilter)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.staged)
}

// ApplyStaged promotes the staged copy to the active filter and
// restarts the quiet period. Discarding a modal simply never calls this.
func (e *Engine) ApplyStaged() {
	e.mutate(func(f *SearchFilter) { *f = e.staged })
}

// Refresh forces a fetch with the current filter after the quiet period.
func (e *Engine) Refresh() {
	e.mutate(func(*SearchFilter) {})
}

// Close cancels any pending quiet-period timer. In-flight requests are
// not cancelled; their updates are suppressed instead.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closed = true
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func (e *Engine) mutate(fn func(f *SearchFilter)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	fn(&e.filter)

	// Cancel-then-reschedule: a change arriving during the quiet
	// period supersedes the pending fetch.
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.quiet, e.fire)
}

func (e *Engine) fire() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.issued++
	seq := e.issued
	filter := e.filter
	e.loading = true
	e.mu.Unlock()

	go e.fetch(seq, filter)
}

func (e *Engine) fetch(seq uint64, filter SearchFilter) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	services, err := e.api.Services(ctx, filter.Values())

	e.mu.Lock()
	if e.closed || seq < e.applied {
		e.mu.Unlock()
		utils.GetLogger().Debug("catalog: dropping stale search response", zap.Uint64("seq", seq))
		return
	}
	e.applied = seq
	e.loading = seq != e.issued
	e.mu.Unlock()

	if err != nil {
		utils.GetLogger().Warn("catalog: search failed", zap.Error(err))
	}
	if e.deliver != nil {
		e.deliver(Update{Seq: seq, Services: services, Err: err})
	}
}
