// Package serverstore provides the server's storage interfaces and
// implementations.
package serverstore

import (
	"context"
	"errors"
	"strings"

	"github.com/Amreshcodee/itemhub/internal/model"
)

// Store errors.
var (
	ErrNotFound      = errors.New("item not found")
	ErrInvalidID     = errors.New("invalid item ID")
	ErrNilItem       = errors.New("item cannot be nil")
	ErrUserExists    = errors.New("username already exists")
	ErrUserNotFound  = errors.New("user not found")
	ErrBadPassword   = errors.New("wrong password")
	ErrEmptyUsername = errors.New("username cannot be empty")
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// ItemStore defines item storage. List order is stable insertion order:
// the client treats response order as the collection's order.
type ItemStore interface {
	// List returns all items, or only those matching search (a
	// case-insensitive substring of name, description or category) when
	// search is non-empty.
	List(ctx context.Context, search string) ([]model.Item, error)

	// Get retrieves an item by its ID.
	Get(ctx context.Context, id string) (*model.Item, error)

	// Create adds a new item and returns it with its generated ID.
	Create(ctx context.Context, item *model.Item) (*model.Item, error)

	// Update replaces an existing item's fields, keeping ID and CreatedAt.
	Update(ctx context.Context, id string, item *model.Item) (*model.Item, error)

	// Delete removes an item by its ID.
	Delete(ctx context.Context, id string) error
}

// UserStore defines account storage. Passwords are bcrypt-hashed before
// they are stored; plaintext never persists.
type UserStore interface {
	// CreateUser registers a new account.
	CreateUser(ctx context.Context, username, password string) (*model.User, error)

	// Authenticate verifies credentials and returns the matching user.
	// Unknown users and wrong passwords are indistinguishable to callers
	// beyond errors.Is(err, ErrUserNotFound) / ErrBadPassword.
	Authenticate(ctx context.Context, username, password string) (*model.User, error)
}

// matchesSearch reports whether the item matches the search text in the
// backend's contract: case-insensitive substring of name, description or
// category.
func matchesSearch(it model.Item, search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(it.Name), s) ||
		strings.Contains(strings.ToLower(it.Description), s) ||
		strings.Contains(strings.ToLower(it.Category), s)
}
