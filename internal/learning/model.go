package learning

import (
	"cmp"
	"maps"
	"slices"

	"github.com/at-ishikawa/vocly/internal/mastery"
	"github.com/at-ishikawa/vocly/internal/statistics"
	"github.com/at-ishikawa/vocly/internal/vocab"
)

// Answer is one graded answer, ready to be persisted.
// Progress and Stat are the already advanced records.
type Answer struct {
	Item     vocab.Item
	Progress mastery.Progress
	Stat     statistics.DailyStat
}

// Snapshot is everything stored for one learner.
type Snapshot struct {
	Items      []vocab.Item
	Progress   map[vocab.Key]mastery.Progress
	Categories map[vocab.Key]string
	DailyStats map[string]statistics.DailyStat
}

// CategoryOf returns the category recorded with the progress of key,
// falling back to the catalog and then to vocab.DefaultCategory.
func (s Snapshot) CategoryOf(key vocab.Key) string {
	if category, ok := s.Categories[key]; ok && category != "" {
		return category
	}
	for _, item := range s.Items {
		if item.Key() == key && item.Category != "" {
			return item.Category
		}
	}
	return vocab.DefaultCategory
}

type progressRow struct {
	Term        string `db:"term" yaml:"english"`
	Translation string `db:"translation" yaml:"german"`
	Category    string `db:"category" yaml:"category"`

	mastery.Progress `yaml:",inline"`
}

func (row progressRow) key() vocab.Key {
	return vocab.Key{Term: row.Term, Translation: row.Translation}
}

func sortedKeys(progress map[vocab.Key]mastery.Progress) []vocab.Key {
	return slices.SortedFunc(maps.Keys(progress), func(a, b vocab.Key) int {
		return cmp.Or(cmp.Compare(a.Term, b.Term), cmp.Compare(a.Translation, b.Translation))
	})
}

func sortedDates(stats map[string]statistics.DailyStat) []string {
	return slices.Sorted(maps.Keys(stats))
}
