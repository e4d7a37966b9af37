package serverstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Amreshcodee/itemhub/internal/model"
)

// MemoryStore implements ItemStore and UserStore with in-memory storage.
// Items keep insertion order: the slice is the order of record, the index
// maps ID to position.
type MemoryStore struct {
	mu    sync.RWMutex
	items []model.Item
	index map[string]int

	userMu sync.RWMutex
	users  map[string]userRecord // keyed by username
}

type userRecord struct {
	id   string
	hash []byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index: make(map[string]int),
		users: make(map[string]userRecord),
	}
}

// List returns all items in insertion order, filtered by search when
// non-empty.
func (s *MemoryStore) List(ctx context.Context, search string) ([]model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("list items: %w", ctx.Err())
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Item, 0, len(s.items))
	for _, it := range s.items {
		if search == "" || matchesSearch(it, search) {
			out = append(out, it)
		}
	}

	return out, nil
}

// Get retrieves an item by its ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("get item: %w", ctx.Err())
	default:
	}

	if id == "" {
		return nil, ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, exists := s.index[id]
	if !exists {
		return nil, ErrNotFound
	}

	item := s.items[pos]
	return &item, nil
}

// Create adds a new item at the end of the collection and returns it with
// its generated ID and timestamps.
func (s *MemoryStore) Create(ctx context.Context, item *model.Item) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("create item: %w", ctx.Err())
	default:
	}

	if item == nil {
		return nil, fmt.Errorf("create item: %w", ErrNilItem)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	newItem := model.Item{
		ID:          uuid.New().String(),
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.index[newItem.ID] = len(s.items)
	s.items = append(s.items, newItem)

	return &newItem, nil
}

// Update replaces an existing item's fields in place, preserving its
// position in the collection, its ID and its creation time.
func (s *MemoryStore) Update(ctx context.Context, id string, item *model.Item) (*model.Item, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("update item: %w", ctx.Err())
	default:
	}

	if id == "" {
		return nil, ErrInvalidID
	}

	if item == nil {
		return nil, fmt.Errorf("update item: %w", ErrNilItem)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, exists := s.index[id]
	if !exists {
		return nil, ErrNotFound
	}

	existing := s.items[pos]
	updated := model.Item{
		ID:          id,
		Name:        item.Name,
		Description: item.Description,
		Price:       item.Price,
		Category:    item.Category,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	}

	s.items[pos] = updated
	return &updated, nil
}

// Delete removes an item by its ID, closing the gap so order is preserved.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("delete item: %w", ctx.Err())
	default:
	}

	if id == "" {
		return ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	pos, exists := s.index[id]
	if !exists {
		return ErrNotFound
	}

	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i].ID] = i
	}

	return nil
}

// CreateUser registers a new account with a bcrypt-hashed password.
func (s *MemoryStore) CreateUser(ctx context.Context, username, password string) (*model.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("create user: %w", ctx.Err())
	default:
	}

	if username == "" {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create user: hashing password: %w", err)
	}

	s.userMu.Lock()
	defer s.userMu.Unlock()

	if _, exists := s.users[username]; exists {
		return nil, ErrUserExists
	}

	rec := userRecord{id: uuid.New().String(), hash: hash}
	s.users[username] = rec

	return &model.User{ID: rec.id, Username: username}, nil
}

// Authenticate verifies credentials against the stored bcrypt hash.
func (s *MemoryStore) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("authenticate: %w", ctx.Err())
	default:
	}

	s.userMu.RLock()
	rec, exists := s.users[username]
	s.userMu.RUnlock()

	if !exists {
		return nil, ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword(rec.hash, []byte(password)); err != nil {
		return nil, ErrBadPassword
	}

	return &model.User{ID: rec.id, Username: username}, nil
}
