package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Amreshcodee/itemhub/internal/model"
)

// fakeCatalog scripts the backend. Each call records the arguments it saw.
type fakeCatalog struct {
	mu sync.Mutex

	items   []model.Item
	listErr error

	createErr error
	updateErr error
	deleteErr error

	listCalls   []string
	deleteCalls []string
	created     []model.Item

	// listGate, when set, blocks ListItems until released. Used to
	// interleave fetches deterministically.
	listGate chan struct{}
}

func (f *fakeCatalog) ListItems(ctx context.Context, search string) ([]model.Item, error) {
	f.mu.Lock()
	f.listCalls = append(f.listCalls, search)
	gate := f.listGate
	items := make([]model.Item, len(f.items))
	copy(items, f.items)
	err := f.listErr
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return items, err
}

func (f *fakeCatalog) CreateItem(ctx context.Context, item model.Item) (*model.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, item)
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeCatalog) UpdateItem(ctx context.Context, id string, item model.Item) (*model.Item, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &item, nil
}

func (f *fakeCatalog) DeleteItem(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls = append(f.deleteCalls, id)
	return f.deleteErr
}

func validDraft() model.Draft {
	return model.Draft{Name: "Coffee", Description: "Beans", Price: "9.99", Category: "Groceries"}
}

func TestStore_FetchSuccess(t *testing.T) {
	// Arrange
	catalog := &fakeCatalog{items: []model.Item{{ID: "1", Name: "Coffee"}}}
	s := New(catalog, zap.NewNop())

	// Act
	err := s.Fetch(context.Background())

	// Assert
	if err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	state := s.State()
	if len(state.Items) != 1 || state.Items[0].ID != "1" {
		t.Errorf("State().Items = %v, want the fetched collection", state.Items)
	}
	if state.Loading {
		t.Error("loading should clear after fetch")
	}
	if state.Err != "" {
		t.Errorf("State().Err = %q, want empty", state.Err)
	}
}

func TestStore_FetchFailurePreservesItems(t *testing.T) {
	// Arrange
	catalog := &fakeCatalog{items: []model.Item{{ID: "1"}}}
	s := New(catalog, zap.NewNop())
	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("seed fetch failed: %v", err)
	}

	catalog.mu.Lock()
	catalog.listErr = errors.New("network down")
	catalog.mu.Unlock()

	// Act
	err := s.Fetch(context.Background())

	// Assert
	if err == nil {
		t.Fatal("Fetch() should return the wrapped error")
	}
	state := s.State()
	if len(state.Items) != 1 {
		t.Errorf("failed fetch must preserve the previous collection, got %v", state.Items)
	}
	if state.Err != FetchFailedNotice {
		t.Errorf("State().Err = %q, want %q", state.Err, FetchFailedNotice)
	}
}

func TestStore_ErrClearedByNextSuccessfulFetch(t *testing.T) {
	// Arrange
	catalog := &fakeCatalog{listErr: errors.New("down")}
	s := New(catalog, zap.NewNop())
	_ = s.Fetch(context.Background())

	catalog.mu.Lock()
	catalog.listErr = nil
	catalog.mu.Unlock()

	// Act
	if err := s.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}

	// Assert
	if state := s.State(); state.Err != "" {
		t.Errorf("State().Err = %q, want cleared", state.Err)
	}
}

func TestStore_SetSearch(t *testing.T) {
	// Arrange
	s := New(&fakeCatalog{}, zap.NewNop())

	// Assert
	if !s.SetSearch("coffee") {
		t.Error("SetSearch() with a new query should report a change")
	}
	if s.SetSearch("coffee") {
		t.Error("SetSearch() with the same query should report no change")
	}
	if s.Search() != "coffee" {
		t.Errorf("Search() = %q, want %q", s.Search(), "coffee")
	}
}

func TestStore_FetchUsesCurrentSearch(t *testing.T) {
	// Arrange
	catalog := &fakeCatalog{}
	s := New(catalog, zap.NewNop())
	s.SetSearch("lamp")

	// Act
	_ = s.Fetch(context.Background())

	// Assert
	if len(catalog.listCalls) != 1 || catalog.listCalls[0] != "lamp" {
		t.Errorf("ListItems calls = %v, want one call with %q", catalog.listCalls, "lamp")
	}
}

func TestStore_StaleFetchDiscarded(t *testing.T) {
	// Arrange: the first fetch blocks on the gate; a search change then
	// makes it stale before it completes.
	gate := make(chan struct{})
	catalog := &fakeCatalog{
		items:    []model.Item{{ID: "old"}},
		listGate: gate,
	}
	s := New(catalog, zap.NewNop())

	done := make(chan error, 1)
	go func() {
		done <- s.Fetch(context.Background())
	}()

	// Wait for the fetch to be in flight.
	for {
		catalog.mu.Lock()
		started := len(catalog.listCalls) > 0
		catalog.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	s.SetSearch("newer")

	// Act: release the stale fetch.
	close(gate)
	if err := <-done; err != nil {
		t.Fatalf("stale fetch should be discarded silently, got %v", err)
	}

	// Assert
	state := s.State()
	if len(state.Items) != 0 {
		t.Errorf("stale outcome must not land, got items %v", state.Items)
	}
	if !state.Loading {
		t.Error("loading belongs to the newer intent and must stay set")
	}
}

func TestStore_CreateRefetches(t *testing.T) {
	// Arrange
	catalog := &fakeCatalog{}
	s := New(catalog, zap.NewNop())
	s.SetSearch("coffee")

	// Act
	err := s.Create(context.Background(), validDraft())

	// Assert
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if len(catalog.created) != 1 || catalog.created[0].Name != "Coffee" {
		t.Errorf("created items = %v, want the draft's item", catalog.created)
	}
	if len(catalog.listCalls) != 1 || catalog.listCalls[0] != "coffee" {
		t.Errorf("re-fetch calls = %v, want one with the active filter", catalog.listCalls)
	}
}

func TestStore_CreateFailureLeavesItemsUntouched(t *testing.T) {
	// Arrange
	catalog := &fakeCatalog{items: []model.Item{{ID: "1"}}}
	s := New(catalog, zap.NewNop())
	_ = s.Fetch(context.Background())

	catalog.mu.Lock()
	catalog.createErr = errors.New("boom")
	catalog.mu.Unlock()

	// Act
	err := s.Create(context.Background(), validDraft())

	// Assert
	if err == nil {
		t.Fatal("Create() should fail")
	}
	state := s.State()
	if len(state.Items) != 1 {
		t.Errorf("failed create must not touch the collection, got %v", state.Items)
	}
	if state.Err != CreateFailedNotice {
		t.Errorf("State().Err = %q, want %q", state.Err, CreateFailedNotice)
	}
}

func TestStore_DeleteRefetches(t *testing.T) {
	// Arrange
	catalog := &fakeCatalog{}
	s := New(catalog, zap.NewNop())

	// Act
	err := s.Delete(context.Background(), "item-7")

	// Assert
	if err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if len(catalog.deleteCalls) != 1 || catalog.deleteCalls[0] != "item-7" {
		t.Errorf("delete calls = %v, want [item-7]", catalog.deleteCalls)
	}
	if len(catalog.listCalls) != 1 {
		t.Errorf("re-fetch calls = %v, want exactly one", catalog.listCalls)
	}
}

func TestStore_UpdateFailureSetsNotice(t *testing.T) {
	// Arrange
	catalog := &fakeCatalog{updateErr: errors.New("boom")}
	s := New(catalog, zap.NewNop())

	// Act
	err := s.Update(context.Background(), "item-1", validDraft())

	// Assert
	if err == nil {
		t.Fatal("Update() should fail")
	}
	if state := s.State(); state.Err != UpdateFailedNotice {
		t.Errorf("State().Err = %q, want %q", state.Err, UpdateFailedNotice)
	}
}
