package vocab

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrNoValidItems is returned when an import has no usable entries.
	ErrNoValidItems = errors.New("no valid entries found (term and translation are required)")

	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Normalize trims every field, assigns DefaultCategory to items without one,
// and drops the items without a term or a translation. Only the first item of
// each Key is kept; later ones count as skipped.
func Normalize(items []Item) (valid []Item, skipped int) {
	valid = make([]Item, 0, len(items))
	seen := make(map[Key]struct{}, len(items))
	for _, item := range items {
		item = Item{
			Category:    strings.TrimSpace(item.Category),
			Term:        strings.TrimSpace(item.Term),
			Translation: strings.TrimSpace(item.Translation),
			Example:     strings.TrimSpace(item.Example),
		}
		if item.Category == "" {
			item.Category = DefaultCategory
		}
		if err := validate.Struct(item); err != nil {
			skipped++
			continue
		}
		if _, ok := seen[item.Key()]; ok {
			skipped++
			continue
		}
		seen[item.Key()] = struct{}{}
		valid = append(valid, item)
	}
	return valid, skipped
}

// Prepare normalizes items and fails when none of them is usable.
func Prepare(items []Item) ([]Item, int, error) {
	valid, skipped := Normalize(items)
	if len(valid) == 0 {
		return nil, skipped, ErrNoValidItems
	}
	return valid, skipped, nil
}
