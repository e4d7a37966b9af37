// Package store owns the client's authoritative item collection and its
// fetch/search/mutate lifecycle.
package store

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Amreshcodee/itemhub/internal/model"
)

// Catalog is the slice of the API client the store needs.
type Catalog interface {
	ListItems(ctx context.Context, search string) ([]model.Item, error)
	CreateItem(ctx context.Context, item model.Item) (*model.Item, error)
	UpdateItem(ctx context.Context, id string, item model.Item) (*model.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// User-facing failure notices. Fetch failures persist in State.Err until
// the next successful fetch; mutation failures stay until cleared the same
// way, leaving the open form/dialog untouched so the user can retry.
const (
	FetchFailedNotice  = "Failed to load items. Please try again later."
	CreateFailedNotice = "Failed to add item. Please try again."
	UpdateFailedNotice = "Failed to update item. Please try again."
	DeleteFailedNotice = "Failed to delete item. Please try again."
)

// State is a read-only snapshot of the store for rendering. Loading takes
// rendering priority over a stale Err.
type State struct {
	Items   []model.Item
	Loading bool
	Err     string
}

// Store is the single source of truth for the item collection. The
// collection is replaced wholesale by fetch outcomes and never patched in
// place; mutations reassert consistency by re-fetching with the current
// search filter.
//
// Fetches are guarded by an intent generation: SetSearch bumps it in UI
// event order, each fetch snapshots it at start, and a completed fetch is
// discarded when a newer intent exists. A slow response for an old filter
// can therefore never overwrite a newer one.
type Store struct {
	catalog Catalog
	logger  *zap.Logger

	mu      sync.Mutex
	items   []model.Item
	loading bool
	err     string
	search  string
	intent  uint64
}

// New creates an empty store backed by the given catalog client.
func New(catalog Catalog, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{catalog: catalog, logger: logger}
}

// State returns a snapshot of the store.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]model.Item, len(s.items))
	copy(items, s.items)
	return State{Items: items, Loading: s.loading, Err: s.err}
}

// Search returns the current search filter. Empty means "no filter".
func (s *Store) Search() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search
}

// SetSearch records a new search filter and reports whether it changed.
// A change is the sole trigger for an automatic re-fetch: when SetSearch
// returns true the caller must follow up with Fetch. The generation bump
// happens here, in UI event order, so the newest filter always wins over
// slower in-flight fetches regardless of goroutine scheduling.
func (s *Store) SetSearch(query string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if query == s.search {
		return false
	}
	s.search = query
	s.intent++
	return true
}

// Fetch loads the collection for the current search filter. On success the
// collection is replaced wholesale and any error cleared; on failure the
// previous collection is preserved and a user-facing notice set. Loading is
// cleared on completion either way; an outcome older than the latest intent
// is discarded entirely, leaving state to the newer fetch.
func (s *Store) Fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	gen := s.intent
	query := s.search
	s.mu.Unlock()

	items, err := s.catalog.ListItems(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.intent {
		s.logger.Debug("discarding stale fetch",
			zap.String("query", query),
			zap.Uint64("fetched", gen),
			zap.Uint64("current", s.intent),
		)
		return nil
	}

	s.loading = false
	if err != nil {
		s.logger.Warn("fetch failed", zap.String("query", query), zap.Error(err))
		s.err = FetchFailedNotice
		return fmt.Errorf("fetch items: %w", err)
	}

	s.items = items
	s.err = ""
	return nil
}

// Create submits a new item built from the draft, then re-fetches with the
// current filter. On failure the collection is untouched and State.Err
// carries the notice; the caller keeps its form open for retry.
func (s *Store) Create(ctx context.Context, draft model.Draft) error {
	item, err := draft.Item()
	if err != nil {
		s.setErr(CreateFailedNotice)
		return fmt.Errorf("create item: %w", err)
	}

	if _, err := s.catalog.CreateItem(ctx, item); err != nil {
		s.logger.Warn("create failed", zap.Error(err))
		s.setErr(CreateFailedNotice)
		return fmt.Errorf("create item: %w", err)
	}

	return s.Fetch(ctx)
}

// Update replaces the item with the given id, then re-fetches.
func (s *Store) Update(ctx context.Context, id string, draft model.Draft) error {
	item, err := draft.Item()
	if err != nil {
		s.setErr(UpdateFailedNotice)
		return fmt.Errorf("update item %s: %w", id, err)
	}

	if _, err := s.catalog.UpdateItem(ctx, id, item); err != nil {
		s.logger.Warn("update failed", zap.String("id", id), zap.Error(err))
		s.setErr(UpdateFailedNotice)
		return fmt.Errorf("update item %s: %w", id, err)
	}

	return s.Fetch(ctx)
}

// Delete removes the item with the given id, then re-fetches.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.catalog.DeleteItem(ctx, id); err != nil {
		s.logger.Warn("delete failed", zap.String("id", id), zap.Error(err))
		s.setErr(DeleteFailedNotice)
		return fmt.Errorf("delete item %s: %w", id, err)
	}

	return s.Fetch(ctx)
}

func (s *Store) setErr(notice string) {
	s.mu.Lock()
	s.err = notice
	s.mu.Unlock()
}
