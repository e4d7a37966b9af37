// Package model defines data structures shared by the client and the server.
package model

import (
	"errors"
	"fmt"
	"time"
)

// Validation errors for Item.
var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrNameTooLong      = errors.New("name cannot exceed 255 characters")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrDescriptionLimit = errors.New("description cannot exceed 1000 characters")
	ErrNonPositivePrice = errors.New("price must be greater than zero")
	ErrEmptyCategory    = errors.New("category cannot be empty")
)

// Validation constants.
const (
	MaxNameLength        = 255
	MaxDescriptionLength = 1000
)

// Item represents a priced, categorized catalog entry. ID is assigned by the
// server and immutable once created. Category is a free-form label: two items
// with equal category strings belong to the same group.
type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

// Validate checks if the Item has valid field values.
func (i *Item) Validate() error {
	if i.Name == "" {
		return ErrEmptyName
	}

	if len(i.Name) > MaxNameLength {
		return ErrNameTooLong
	}

	if i.Description == "" {
		return ErrEmptyDescription
	}

	if len(i.Description) > MaxDescriptionLength {
		return ErrDescriptionLimit
	}

	if i.Price <= 0 {
		return ErrNonPositivePrice
	}

	if i.Category == "" {
		return ErrEmptyCategory
	}

	return nil
}

// User identifies an authenticated account. Passwords never appear here;
// the server stores bcrypt hashes only.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ErrorResponse is the JSON body the API returns for any non-2xx outcome.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ErrUnauthenticated marks any API rejection caused by a missing or invalid
// session. Use errors.Is; *APIError values with status 401 match it.
var ErrUnauthenticated = errors.New("unauthenticated")

// APIError is the client-side representation of a non-2xx API response.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Is makes 401 responses match ErrUnauthenticated under errors.Is.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthenticated && e.StatusCode == 401
}
