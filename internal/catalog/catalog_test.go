package catalog

import (
	"reflect"
	"testing"

	"github.com/Amreshcodee/itemhub/internal/model"
)

func sample() []model.Item {
	return []model.Item{
		{ID: "1", Name: "Coffee", Category: "Groceries"},
		{ID: "2", Name: "Lamp", Category: "Home"},
		{ID: "3", Name: "Tea", Category: "Groceries"},
		{ID: "4", Name: "Chair", Category: "Home"},
		{ID: "5", Name: "Pen", Category: "Stationery"},
	}
}

func TestGroupByCategory(t *testing.T) {
	// Act
	groups := GroupByCategory(sample())

	// Assert
	if len(groups) != 3 {
		t.Fatalf("GroupByCategory() produced %d groups, want 3", len(groups))
	}

	groceries := groups["Groceries"]
	if len(groceries) != 2 || groceries[0].ID != "1" || groceries[1].ID != "3" {
		t.Errorf("Groceries group = %v, want items 1 and 3 in input order", groceries)
	}

	// Every input item lands in exactly one group.
	total := 0
	for _, g := range groups {
		total += len(g)
	}
	if total != len(sample()) {
		t.Errorf("groups hold %d items, want %d", total, len(sample()))
	}
}

func TestGroupByCategory_Empty(t *testing.T) {
	if groups := GroupByCategory(nil); len(groups) != 0 {
		t.Errorf("GroupByCategory(nil) = %v, want empty", groups)
	}
}

func TestDistinctCategories_FirstSeenOrder(t *testing.T) {
	// Act
	cats := DistinctCategories(sample())

	// Assert
	want := []string{"Groceries", "Home", "Stationery"}
	if !reflect.DeepEqual(cats, want) {
		t.Errorf("DistinctCategories() = %v, want %v", cats, want)
	}
}

func TestDistinctCategories_Idempotent(t *testing.T) {
	// Arrange
	items := sample()

	// Act
	first := DistinctCategories(items)
	second := DistinctCategories(items)

	// Assert
	if !reflect.DeepEqual(first, second) {
		t.Errorf("DistinctCategories() not stable: %v vs %v", first, second)
	}
}
