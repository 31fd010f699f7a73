// Package mastery schedules reviews from per-item mastery levels.
//
// A learner's mastery of an item is a level between MinLevel and MaxLevel.
// A correct answer raises it by one, a wrong answer lowers it by one, and the
// resulting level selects how many days pass before the next review.
package mastery

import "time"

const (
	MinLevel = 0
	MaxLevel = 5
	// MasteredLevel is the lowest level counted as mastered.
	MasteredLevel = 4
)

// Intervals holds the days until the next review, indexed by level.
// Level 0 is reviewed again the same day.
var Intervals = [MaxLevel + 1]int{0, 1, 3, 7, 14, 30}

// Progress is a learner's record for one item.
type Progress struct {
	Level          int       `json:"level" yaml:"level" db:"level"`
	CorrectCount   int       `json:"correctCount" yaml:"correct_count" db:"correct_count"`
	IncorrectCount int       `json:"incorrectCount" yaml:"incorrect_count" db:"incorrect_count"`
	LastReviewed   time.Time `json:"lastReviewed" yaml:"last_reviewed" db:"last_reviewed"`
	NextReview     time.Time `json:"nextReview" yaml:"next_review" db:"next_review"`
}

// Advance returns the record after one answer. existing is nil for an item
// that has never been answered, and is never modified. Such an item starts
// from MinLevel, so its first correct answer reaches level 1.
//
// Levels saturate at MinLevel and MaxLevel, so a first wrong answer and a
// regression from level 1 both end at level 0.
func Advance(existing *Progress, isCorrect bool, now time.Time) Progress {
	next := Progress{Level: MinLevel}
	if existing != nil {
		next = Progress{
			Level:          ClampLevel(existing.Level),
			CorrectCount:   max(existing.CorrectCount, 0),
			IncorrectCount: max(existing.IncorrectCount, 0),
		}
	}

	if isCorrect {
		next.Level = ClampLevel(next.Level + 1)
		next.CorrectCount++
	} else {
		next.Level = ClampLevel(next.Level - 1)
		next.IncorrectCount++
	}

	next.LastReviewed = now
	next.NextReview = now.AddDate(0, 0, IntervalDays(next.Level))
	return next
}

// ClampLevel limits level to [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	return min(max(level, MinLevel), MaxLevel)
}

// IntervalDays returns the review interval of level in days.
func IntervalDays(level int) int {
	return Intervals[ClampLevel(level)]
}

// IsDue reports whether the item should be reviewed at now.
func (p Progress) IsDue(now time.Time) bool {
	return !p.NextReview.After(now)
}

// IsMastered reports whether the item reached MasteredLevel.
func (p Progress) IsMastered() bool {
	return ClampLevel(p.Level) >= MasteredLevel
}

// IsLearning reports whether the item has left level 0 but is not mastered.
func (p Progress) IsLearning() bool {
	level := ClampLevel(p.Level)
	return level > MinLevel && level < MasteredLevel
}

// Total returns the number of answers recorded.
func (p Progress) Total() int {
	return p.CorrectCount + p.IncorrectCount
}

// Accuracy returns the share of correct answers, or 0 before any answer.
func (p Progress) Accuracy() float64 {
	if p.Total() == 0 {
		return 0
	}
	return float64(p.CorrectCount) / float64(p.Total())
}
