// Package statistics accounts daily activity, streaks and learning totals.
package statistics

import "time"

// DateLayout is the format of DailyStat dates.
const DateLayout = "2006-01-02"

// DailyStat is the activity of one calendar day in the learner's timezone.
type DailyStat struct {
	Date              string `json:"date" yaml:"date" db:"date"`
	QuestionsAnswered int    `json:"questionsAnswered" yaml:"questions_answered" db:"questions_answered"`
	CorrectAnswers    int    `json:"correctAnswers" yaml:"correct_answers" db:"correct_answers"`
}

// DateKey returns the calendar date of t in loc.
func DateKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// ParseTimezone parses a timezone name, returning UTC as fallback.
func ParseTimezone(tz string) *time.Location {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// RecordAnswer returns the stat of date after one more answer.
// existing is nil for the first answer of the day and is never modified.
func RecordAnswer(existing *DailyStat, date string, isCorrect bool) DailyStat {
	stat := DailyStat{Date: date}
	if existing != nil {
		stat.QuestionsAnswered = max(existing.QuestionsAnswered, 0)
		stat.CorrectAnswers = min(max(existing.CorrectAnswers, 0), stat.QuestionsAnswered)
	}

	stat.QuestionsAnswered++
	if isCorrect {
		stat.CorrectAnswers++
	}
	return stat
}

// Accuracy returns the share of correct answers of the day.
func (s DailyStat) Accuracy() float64 {
	if s.QuestionsAnswered == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.QuestionsAnswered)
}
