// Package catalog derives category-level views from an item collection.
//
// Both projections are pure: they are recomputed from the authoritative
// collection on every call and never cache, so they can never show a stale
// grouping. The input slice is not modified.
package catalog

import "github.com/Amreshcodee/itemhub/internal/model"

// GroupByCategory partitions items by their category label. Every item lands
// in exactly one group, and each group preserves the items' relative order
// from the input.
func GroupByCategory(items []model.Item) map[string][]model.Item {
	groups := make(map[string][]model.Item)
	for _, it := range items {
		groups[it.Category] = append(groups[it.Category], it)
	}
	return groups
}

// DistinctCategories returns each category once, ordered by first occurrence
// in the input. First-seen order, not alphabetical, so the category selector
// mirrors the table.
func DistinctCategories(items []model.Item) []string {
	seen := make(map[string]bool, len(items))
	var categories []string
	for _, it := range items {
		if seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		categories = append(categories, it.Category)
	}
	return categories
}
