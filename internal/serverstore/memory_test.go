package serverstore

import (
	"context"
	"errors"
	"testing"

	"github.com/Amreshcodee/itemhub/internal/model"
)

func seedItems(t *testing.T, s ItemStore, names ...string) []model.Item {
	t.Helper()
	out := make([]model.Item, 0, len(names))
	for _, name := range names {
		created, err := s.Create(context.Background(), &model.Item{
			Name:        name,
			Description: "about " + name,
			Price:       1,
			Category:    "Misc",
		})
		if err != nil {
			t.Fatalf("seed Create(%q) failed: %v", name, err)
		}
		out = append(out, *created)
	}
	return out
}

func TestMemoryStore_ListInsertionOrder(t *testing.T) {
	// Arrange
	s := NewMemoryStore()
	seedItems(t, s, "first", "second", "third")

	// Act
	items, err := s.List(context.Background(), "")

	// Assert
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	got := []string{}
	for _, it := range items {
		got = append(got, it.Name)
	}
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("List() order = %v, want %v", got, want)
		}
	}
}

func TestMemoryStore_ListSearch(t *testing.T) {
	// Arrange
	s := NewMemoryStore()
	_, _ = s.Create(context.Background(), &model.Item{Name: "Coffee Beans", Description: "dark roast", Price: 1, Category: "Groceries"})
	_, _ = s.Create(context.Background(), &model.Item{Name: "Lamp", Description: "LED", Price: 1, Category: "Home"})
	_, _ = s.Create(context.Background(), &model.Item{Name: "Mug", Description: "for coffee", Price: 1, Category: "Kitchen"})

	tests := []struct {
		name   string
		search string
		want   int
	}{
		{name: "matches name and description, case-insensitive", search: "COFFEE", want: 2},
		{name: "matches category", search: "home", want: 1},
		{name: "no matches", search: "bicycle", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := s.List(context.Background(), tt.search)
			if err != nil {
				t.Fatalf("List() unexpected error: %v", err)
			}
			if len(items) != tt.want {
				t.Errorf("List(%q) returned %d items, want %d", tt.search, len(items), tt.want)
			}
		})
	}
}

func TestMemoryStore_UpdatePreservesPositionAndCreatedAt(t *testing.T) {
	// Arrange
	s := NewMemoryStore()
	seeded := seedItems(t, s, "a", "b", "c")
	target := seeded[1]

	// Act
	updated, err := s.Update(context.Background(), target.ID, &model.Item{
		Name: "b2", Description: "changed", Price: 2, Category: "Misc",
	})

	// Assert
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}
	if !updated.CreatedAt.Equal(target.CreatedAt) {
		t.Error("Update() must preserve CreatedAt")
	}
	if !updated.UpdatedAt.After(target.UpdatedAt) && !updated.UpdatedAt.Equal(target.UpdatedAt) {
		t.Error("Update() should refresh UpdatedAt")
	}

	items, _ := s.List(context.Background(), "")
	if items[1].Name != "b2" {
		t.Errorf("updated item moved; order = %v", items)
	}
}

func TestMemoryStore_DeleteClosesGap(t *testing.T) {
	// Arrange
	s := NewMemoryStore()
	seeded := seedItems(t, s, "a", "b", "c")

	// Act
	if err := s.Delete(context.Background(), seeded[0].ID); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	// Assert
	items, _ := s.List(context.Background(), "")
	if len(items) != 2 || items[0].Name != "b" || items[1].Name != "c" {
		t.Errorf("List() after delete = %v, want b then c", items)
	}

	// Index must stay consistent for subsequent operations.
	if _, err := s.Get(context.Background(), seeded[2].ID); err != nil {
		t.Errorf("Get() after delete failed: %v", err)
	}
	if err := s.Delete(context.Background(), seeded[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_GetErrors(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.Get(context.Background(), ""); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Get(\"\") = %v, want ErrInvalidID", err)
	}
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_Users(t *testing.T) {
	// Arrange
	s := NewMemoryStore()
	ctx := context.Background()

	// Act
	user, err := s.CreateUser(ctx, "alice", "secret")

	// Assert
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}
	if user.Username != "alice" || user.ID == "" {
		t.Errorf("CreateUser() = %+v, want alice with generated ID", user)
	}

	if _, err := s.CreateUser(ctx, "alice", "other"); !errors.Is(err, ErrUserExists) {
		t.Errorf("duplicate CreateUser() = %v, want ErrUserExists", err)
	}

	if _, err := s.Authenticate(ctx, "alice", "secret"); err != nil {
		t.Errorf("Authenticate() with good password failed: %v", err)
	}
	if _, err := s.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, ErrBadPassword) {
		t.Errorf("Authenticate() with bad password = %v, want ErrBadPassword", err)
	}
	if _, err := s.Authenticate(ctx, "nobody", "x"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Authenticate() unknown user = %v, want ErrUserNotFound", err)
	}
}
