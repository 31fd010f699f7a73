// Package vocab provides the vocabulary catalog model and its importers.
package vocab

import "fmt"

const (
	// AllCategories selects every category when building a session.
	AllCategories = "all"
	// DefaultCategory is assigned to imported items without a category.
	DefaultCategory = "General"
)

// Item is one term pair of the catalog.
// The pair is direction-agnostic: a quiz may ask for either side.
type Item struct {
	Category    string `json:"category" yaml:"category" db:"category"`
	Term        string `json:"english" yaml:"english" db:"term" validate:"required"`
	Translation string `json:"german" yaml:"german" db:"translation" validate:"required"`
	Example     string `json:"example" yaml:"example,omitempty" db:"example"`
}

// Key identifies an item across sessions. It is the join key to progress.
type Key struct {
	Term        string `json:"english" yaml:"english"`
	Translation string `json:"german" yaml:"german"`
}

// Key returns the identity key of the item.
func (item Item) Key() Key {
	return Key{Term: item.Term, Translation: item.Translation}
}

func (k Key) String() string {
	return fmt.Sprintf("%s-%s", k.Term, k.Translation)
}

// DefaultItems returns the built-in catalog used before anything is imported.
func DefaultItems() []Item {
	return []Item{
		{
			Category:    "Meeting",
			Term:        "Just to align on the next steps",
			Translation: "Nur zur Abstimmung der nächsten Schritte",
			Example:     "Just to align on the next steps, I suggest a follow-up call.",
		},
		{
			Category:    "Meeting",
			Term:        "From my understanding",
			Translation: "Meines Verständnisses nach",
			Example:     "From my understanding, this is still open.",
		},
	}
}

// Categories returns AllCategories followed by the distinct categories of items
// in the order they first appear.
func Categories(items []Item) []string {
	seen := make(map[string]struct{}, len(items))
	categories := []string{AllCategories}
	for _, item := range items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	return categories
}

// CountByCategory returns the number of items per category.
func CountByCategory(items []Item) map[string]int {
	counts := make(map[string]int)
	for _, item := range items {
		counts[item.Category]++
	}
	return counts
}

// FilterByCategory returns the items of category, or every item for AllCategories.
// The returned slice never aliases items.
func FilterByCategory(items []Item, category string) []Item {
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if category != AllCategories && item.Category != category {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}
